package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	utserrors "utscraper/pkg/errors"
	"utscraper/pkg/storage"
	"utscraper/pkg/untappd"
)

func newGalleryServer(t *testing.T, photos map[string]string) (*httptest.Server, func() int) {
	t.Helper()
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		body, ok := photos[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, func() int { return hits }
}

func testRecords(server *httptest.Server, ids ...string) []untappd.PhotoRecord {
	records := make([]untappd.PhotoRecord, len(ids))
	for i, id := range ids {
		records[i] = untappd.PhotoRecord{ID: id, ImageURL: server.URL + "/" + id + ".jpg"}
	}
	return records
}

func TestFetchAllDownloadsInOrder(t *testing.T) {
	server, _ := newGalleryServer(t, map[string]string{
		"/a.jpg": "image-a",
		"/b.jpg": "image-b",
		"/c.jpg": "image-c",
	})

	dir := t.TempDir()
	manager, err := storage.NewManager(dir)
	require.NoError(t, err)

	client := untappd.NewClient(5*time.Second, "test-agent", nil)
	fetcher := NewFetcher(client, manager, Options{FileNamePattern: "photo_%04d.jpg"})

	summary, err := fetcher.FetchAll(context.Background(), testRecords(server, "a", "b", "c"))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Downloaded)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)

	for i, want := range []string{"image-a", "image-b", "image-c"} {
		name := filepath.Join(dir, summary.Results[i].Filename)
		data, readErr := os.ReadFile(name)
		require.NoError(t, readErr)
		assert.Equal(t, want, string(data))
	}
	assert.Equal(t, "photo_0001.jpg", summary.Results[0].Filename)
	assert.Equal(t, "photo_0003.jpg", summary.Results[2].Filename)
}

func TestFetchAllSkipsExistingFiles(t *testing.T) {
	server, hits := newGalleryServer(t, map[string]string{
		"/a.jpg": "image-a",
		"/b.jpg": "image-b",
	})

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo_0001.jpg"), []byte("kept"), 0644))

	manager, err := storage.NewManager(dir)
	require.NoError(t, err)

	client := untappd.NewClient(5*time.Second, "test-agent", nil)
	fetcher := NewFetcher(client, manager, Options{})

	summary, err := fetcher.FetchAll(context.Background(), testRecords(server, "a", "b"))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Downloaded)
	assert.Equal(t, 1, hits(), "existing file must not be fetched")

	data, err := os.ReadFile(filepath.Join(dir, "photo_0001.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "kept", string(data), "existing file must not be overwritten")
}

func TestFetchAllIsIdempotent(t *testing.T) {
	server, hits := newGalleryServer(t, map[string]string{"/a.jpg": "image-a"})

	dir := t.TempDir()
	manager, err := storage.NewManager(dir)
	require.NoError(t, err)

	client := untappd.NewClient(5*time.Second, "test-agent", nil)
	fetcher := NewFetcher(client, manager, Options{})
	records := testRecords(server, "a")

	first, err := fetcher.FetchAll(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Downloaded)

	second, err := fetcher.FetchAll(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Skipped)
	assert.Equal(t, 0, second.Downloaded)
	assert.Equal(t, 1, hits())
}

func TestFetchAllContainsPerItemFailures(t *testing.T) {
	server, _ := newGalleryServer(t, map[string]string{
		"/a.jpg": "image-a",
		"/c.jpg": "image-c",
	})

	dir := t.TempDir()
	manager, err := storage.NewManager(dir)
	require.NoError(t, err)

	client := untappd.NewClient(5*time.Second, "test-agent", nil)
	fetcher := NewFetcher(client, manager, Options{})

	// "b" 404s; the run must still fetch "c"
	summary, err := fetcher.FetchAll(context.Background(), testRecords(server, "a", "b", "c"))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Downloaded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, StatusFailed, summary.Results[1].Status)
	require.Error(t, summary.Results[1].Error)
	assert.Equal(t, utserrors.ErrorTypeDownload, utserrors.TypeOf(summary.Results[1].Error))

	_, statErr := os.Stat(filepath.Join(dir, "photo_0002.jpg"))
	assert.True(t, os.IsNotExist(statErr), "failed fetch must leave no file behind")
}

func TestFetchAllCancelledContext(t *testing.T) {
	server, hits := newGalleryServer(t, map[string]string{"/a.jpg": "image-a"})

	dir := t.TempDir()
	manager, err := storage.NewManager(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := untappd.NewClient(5*time.Second, "test-agent", nil)
	fetcher := NewFetcher(client, manager, Options{})

	summary, err := fetcher.FetchAll(ctx, testRecords(server, "a"))
	require.Error(t, err)
	assert.Equal(t, utserrors.ErrorTypeInterrupted, utserrors.TypeOf(err))
	assert.Empty(t, summary.Results)
	assert.Equal(t, 0, hits())
}

func TestFetchAllReportsResults(t *testing.T) {
	server, _ := newGalleryServer(t, map[string]string{"/a.jpg": "image-a", "/b.jpg": "image-b"})

	dir := t.TempDir()
	manager, err := storage.NewManager(dir)
	require.NoError(t, err)

	var seen []string
	client := untappd.NewClient(5*time.Second, "test-agent", nil)
	fetcher := NewFetcher(client, manager, Options{
		OnResult: func(r Result) { seen = append(seen, r.Filename) },
	})

	_, err = fetcher.FetchAll(context.Background(), testRecords(server, "a", "b"))
	require.NoError(t, err)
	assert.Equal(t, []string{"photo_0001.jpg", "photo_0002.jpg"}, seen)
}
