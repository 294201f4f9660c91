// Package metadata writes and reads the crawl manifest that sits next to
// the downloaded photos.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"utscraper/pkg/untappd"
)

// ManifestFileName is the manifest's fixed name inside the output directory
const ManifestFileName = "photos.json"

// Entry pairs a crawled photo record with its on-disk filename
type Entry struct {
	PhotoID  string `json:"photo_id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Manifest records what a crawl found and where each asset was stored
type Manifest struct {
	Username  string    `json:"username"`
	CrawledAt time.Time `json:"crawled_at"`
	Count     int       `json:"count"`
	Photos    []Entry   `json:"photos"`
}

// NewManifest builds a manifest from crawl records, naming each entry with
// the same 1-based position pattern the fetcher uses.
func NewManifest(username string, records []untappd.PhotoRecord, fileNamePattern string) *Manifest {
	entries := make([]Entry, len(records))
	for i, record := range records {
		entries[i] = Entry{
			PhotoID:  record.ID,
			URL:      record.ImageURL,
			Filename: fmt.Sprintf(fileNamePattern, i+1),
		}
	}

	return &Manifest{
		Username:  username,
		CrawledAt: time.Now().UTC(),
		Count:     len(entries),
		Photos:    entries,
	}
}

// Save writes the manifest as indented JSON into dir
func (m *Manifest) Save(dir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// Load reads the manifest from dir
func Load(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Exists checks whether dir already holds a manifest
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ManifestFileName))
	return err == nil
}
