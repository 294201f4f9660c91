package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utscraper/pkg/untappd"
)

func TestNewManifest(t *testing.T) {
	records := []untappd.PhotoRecord{
		{ID: "101", ImageURL: "https://cdn.example.com/101_og.jpg"},
		{ID: "102", ImageURL: "https://cdn.example.com/102_og.jpg"},
	}

	m := NewManifest("goosinsky", records, "photo_%04d.jpg")

	assert.Equal(t, "goosinsky", m.Username)
	assert.Equal(t, 2, m.Count)
	require.Len(t, m.Photos, 2)
	assert.Equal(t, "101", m.Photos[0].PhotoID)
	assert.Equal(t, "photo_0001.jpg", m.Photos[0].Filename)
	assert.Equal(t, "photo_0002.jpg", m.Photos[1].Filename)
	assert.False(t, m.CrawledAt.IsZero())
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	records := []untappd.PhotoRecord{
		{ID: "101", ImageURL: "https://cdn.example.com/101_og.jpg"},
	}

	assert.False(t, Exists(dir))

	m := NewManifest("goosinsky", records, "photo_%04d.jpg")
	require.NoError(t, m.Save(dir))
	assert.True(t, Exists(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, m.Username, loaded.Username)
	assert.Equal(t, m.Count, loaded.Count)
	assert.Equal(t, m.Photos, loaded.Photos)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
