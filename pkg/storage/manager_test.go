package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManager(t *testing.T) {
	tempDir := t.TempDir()

	manager, err := NewManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if manager.ExistingCount() != 0 {
		t.Error("Expected initial file count to be 0")
	}

	if manager.Exists("photo_0001.jpg") {
		t.Error("Expected Exists to return false for missing file")
	}

	testData := []byte("test photo data")
	if err := manager.SaveFile(bytes.NewReader(testData), "photo_0001.jpg"); err != nil {
		t.Fatalf("Failed to save photo: %v", err)
	}

	expectedPath := filepath.Join(tempDir, "photo_0001.jpg")
	content, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(content, testData) {
		t.Error("File content does not match expected data")
	}

	if !manager.Exists("photo_0001.jpg") {
		t.Error("Expected Exists to return true for saved file")
	}

	// No temp file left behind
	if _, err := os.Stat(expectedPath + ".tmp"); !os.IsNotExist(err) {
		t.Error("Expected temporary file to be renamed away")
	}
}

func TestManagerCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "photos_someuser")

	if _, err := NewManager(nested); err != nil {
		t.Fatalf("Failed to create manager in missing directory: %v", err)
	}

	info, err := os.Stat(nested)
	if err != nil || !info.IsDir() {
		t.Error("Expected destination directory to be created")
	}
}

func TestManagerScansExistingFiles(t *testing.T) {
	tempDir := t.TempDir()

	for _, name := range []string{"photo_0001.jpg", "photo_0003.jpg"} {
		if err := os.WriteFile(filepath.Join(tempDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to seed file: %v", err)
		}
	}

	manager, err := NewManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if manager.ExistingCount() != 2 {
		t.Errorf("Expected 2 existing files, got %d", manager.ExistingCount())
	}
	if !manager.Exists("photo_0001.jpg") || !manager.Exists("photo_0003.jpg") {
		t.Error("Expected seeded files to be detected")
	}
	if manager.Exists("photo_0002.jpg") {
		t.Error("Expected missing file to be reported missing")
	}
}

// failingReader errors partway through a read to simulate a broken stream
type failingReader struct {
	data []byte
	read bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.read {
		f.read = true
		n := copy(p, f.data)
		return n, nil
	}
	return 0, errors.New("stream broke")
}

func TestSaveFileFailedStreamLeavesNothing(t *testing.T) {
	tempDir := t.TempDir()

	manager, err := NewManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	err = manager.SaveFile(&failingReader{data: []byte("partial")}, "photo_0001.jpg")
	if err == nil {
		t.Fatal("Expected error from broken stream")
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".jpg") || strings.HasSuffix(entry.Name(), ".tmp") {
			t.Errorf("Expected no leftover file, found %s", entry.Name())
		}
	}

	if manager.Exists("photo_0001.jpg") {
		t.Error("Expected failed save not to register the file")
	}
}

func TestSaveFileDoesNotTouchExisting(t *testing.T) {
	tempDir := t.TempDir()

	original := []byte("original bytes")
	path := filepath.Join(tempDir, "photo_0001.jpg")
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	manager, err := NewManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	// Caller contract: check Exists before saving. Verify the check holds.
	if !manager.Exists("photo_0001.jpg") {
		t.Fatal("Expected existing file to be detected")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if !bytes.Equal(content, original) {
		t.Error("Expected existing file bytes to be untouched")
	}
}
