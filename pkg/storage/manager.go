package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Manager handles destination-directory operations and resume-by-existence
// checks for downloaded photos.
type Manager struct {
	outputDir     string
	existingFiles map[string]bool
	mu            sync.RWMutex
}

// NewManager creates a new storage manager, creating the destination
// directory if absent and scanning it for already downloaded files.
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manager := &Manager{
		outputDir:     outputDir,
		existingFiles: make(map[string]bool),
	}

	if err := manager.scanExistingFiles(); err != nil {
		return nil, fmt.Errorf("failed to scan existing files: %w", err)
	}

	return manager, nil
}

// scanExistingFiles records the files already present in the destination
func (m *Manager) scanExistingFiles() error {
	entries, err := os.ReadDir(m.outputDir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			m.existingFiles[entry.Name()] = true
		}
	}

	return nil
}

// Exists checks if a file of the given name is already in the destination.
// Existing files are never rewritten; this is what makes re-runs resume
// instead of re-downloading.
func (m *Manager) Exists(filename string) bool {
	m.mu.RLock()
	if m.existingFiles[filename] {
		m.mu.RUnlock()
		return true
	}
	m.mu.RUnlock()

	// Double-check on disk in case something was written out of band
	if _, err := os.Stat(filepath.Join(m.outputDir, filename)); err == nil {
		m.mu.Lock()
		m.existingFiles[filename] = true
		m.mu.Unlock()
		return true
	}

	return false
}

// SaveFile streams the reader to the named file. The data goes to a
// temporary file first and is renamed into place only after a complete
// write, so a failed stream never leaves a truncated final file.
func (m *Manager) SaveFile(r io.Reader, filename string) error {
	finalPath := filepath.Join(m.outputDir, filename)

	tempPath := finalPath + ".tmp"
	out, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	_, err = io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write photo data: %w", err)
	}

	if closeErr != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	m.mu.Lock()
	m.existingFiles[filename] = true
	m.mu.Unlock()

	return nil
}

// OutputDir returns the destination directory path
func (m *Manager) OutputDir() string {
	return m.outputDir
}

// ExistingCount returns the number of files known to be in the destination
func (m *Manager) ExistingCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.existingFiles)
}
