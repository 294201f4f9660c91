package auth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCredentialManager(t *testing.T) {
	manager, _ := NewMockManager()

	creds := &Credentials{
		Email:    "brewfan@example.com",
		Password: "hunter22",
	}

	if err := manager.Store(creds); err != nil {
		t.Errorf("Failed to store credentials: %v", err)
	}

	retrieved, err := manager.Retrieve()
	if err != nil {
		t.Errorf("Failed to retrieve credentials: %v", err)
	}
	if retrieved.Email != creds.Email {
		t.Errorf("Email mismatch: got %s, want %s", retrieved.Email, creds.Email)
	}
	if retrieved.Password != creds.Password {
		t.Errorf("Password mismatch: got %s, want %s", retrieved.Password, creds.Password)
	}

	if !manager.Exists() {
		t.Error("Expected credentials to exist after store")
	}

	if err := manager.Delete(); err != nil {
		t.Errorf("Failed to delete credentials: %v", err)
	}
	if manager.Exists() {
		t.Error("Expected credentials to be gone after delete")
	}
	if _, err := manager.Retrieve(); err == nil {
		t.Error("Expected error retrieving deleted credentials")
	}
}

func TestManagerValidation(t *testing.T) {
	manager, _ := NewMockManager()

	if err := manager.Store(&Credentials{Password: "p"}); err == nil {
		t.Error("Expected error storing credentials without email")
	}
	if err := manager.Store(&Credentials{Email: "e@example.com"}); err == nil {
		t.Error("Expected error storing credentials without password")
	}
}

func TestManagerFallbackChain(t *testing.T) {
	// First store always fails; second accepts
	failing := NewMockStore()
	failing.StoreError = errors.New("backend down")
	failing.RetrieveError = errors.New("backend down")
	working := NewMockStore()

	manager := NewMockManagerWithStores(failing, working)

	creds := &Credentials{Email: "brewfan@example.com", Password: "hunter22"}
	if err := manager.Store(creds); err != nil {
		t.Fatalf("Store should fall through to the next backend: %v", err)
	}

	retrieved, err := manager.Retrieve()
	if err != nil {
		t.Fatalf("Retrieve should fall through to the next backend: %v", err)
	}
	if retrieved.Email != creds.Email {
		t.Errorf("Email mismatch: got %s, want %s", retrieved.Email, creds.Email)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.txt")
	store := NewFileStore(path)

	if store.Exists() {
		t.Error("Store should not exist before write")
	}
	if _, err := store.Retrieve(); !errors.Is(err, ErrCredentialsNotFound) {
		t.Errorf("Expected ErrCredentialsNotFound, got %v", err)
	}

	creds := &Credentials{Email: "brewfan@example.com", Password: "hunter22"}
	if err := store.Store(creds); err != nil {
		t.Fatalf("Failed to store: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Credentials file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected 0600 permissions, got %o", perm)
	}

	retrieved, err := store.Retrieve()
	if err != nil {
		t.Fatalf("Failed to retrieve: %v", err)
	}
	if retrieved.Email != creds.Email || retrieved.Password != creds.Password {
		t.Errorf("Round trip mismatch: got %+v", retrieved)
	}

	if err := store.Delete(); err != nil {
		t.Errorf("Failed to delete: %v", err)
	}
	if store.Exists() {
		t.Error("Store should not exist after delete")
	}
}

func TestFileStoreIgnoresBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.txt")
	content := "\n  brewfan@example.com  \n\nhunter22\n\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	creds, err := NewFileStore(path).Retrieve()
	if err != nil {
		t.Fatalf("Failed to retrieve: %v", err)
	}
	if creds.Email != "brewfan@example.com" {
		t.Errorf("Email not trimmed: %q", creds.Email)
	}
	if creds.Password != "hunter22" {
		t.Errorf("Password not trimmed: %q", creds.Password)
	}
}

func TestFileStoreRejectsMalformedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"one line", "brewfan@example.com\n"},
		{"three lines", "a@example.com\npass\nextra\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "creds.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			_, err := NewFileStore(path).Retrieve()
			if err == nil {
				t.Fatal("Expected format error")
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("Error should name the file, got: %v", err)
			}
		})
	}
}

func TestEnvironmentStore(t *testing.T) {
	t.Setenv("UTSCRAPER_EMAIL", "brewfan@example.com")
	t.Setenv("UTSCRAPER_PASSWORD", "hunter22")

	store := NewEnvironmentStore()
	if !store.Exists() {
		t.Error("Expected env credentials to exist")
	}

	creds, err := store.Retrieve()
	if err != nil {
		t.Fatalf("Failed to retrieve: %v", err)
	}
	if creds.Email != "brewfan@example.com" || creds.Password != "hunter22" {
		t.Errorf("Unexpected credentials: %+v", creds)
	}

	if err := store.Store(creds); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable on store, got %v", err)
	}
	if err := store.Delete(); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable on delete, got %v", err)
	}
}

func TestEnvironmentStoreMissing(t *testing.T) {
	t.Setenv("UTSCRAPER_EMAIL", "")
	t.Setenv("UTSCRAPER_PASSWORD", "")

	store := NewEnvironmentStore()
	if store.Exists() {
		t.Error("Expected no env credentials")
	}
	if _, err := store.Retrieve(); !errors.Is(err, ErrCredentialsNotFound) {
		t.Errorf("Expected ErrCredentialsNotFound, got %v", err)
	}
}

func TestEncryptedFileStore(t *testing.T) {
	t.Setenv("UTSCRAPER_PASSPHRASE", "test-passphrase")

	path := filepath.Join(t.TempDir(), "credentials.enc")
	store, err := NewEncryptedFileStore(path)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	creds := &Credentials{
		Email:        "brewfan@example.com",
		Password:     "hunter22",
		LastModified: time.Now(),
	}
	if err := store.Store(creds); err != nil {
		t.Fatalf("Failed to store: %v", err)
	}

	// The file on disk must not leak the plaintext
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "hunter22") {
		t.Error("Password stored in plaintext")
	}

	retrieved, err := store.Retrieve()
	if err != nil {
		t.Fatalf("Failed to retrieve: %v", err)
	}
	if retrieved.Email != creds.Email || retrieved.Password != creds.Password {
		t.Errorf("Round trip mismatch: got %+v", retrieved)
	}

	if err := store.Delete(); err != nil {
		t.Errorf("Failed to delete: %v", err)
	}
	if store.Exists() {
		t.Error("Store should be empty after delete")
	}
}

func TestSanitize(t *testing.T) {
	creds := &Credentials{Email: "brewfan@example.com", Password: "supersecret"}

	sanitized := Sanitize(creds)
	if sanitized.Password == creds.Password {
		t.Error("Password should be masked")
	}
	if sanitized.Email != creds.Email {
		t.Error("Email should be preserved")
	}
	if Sanitize(nil) != nil {
		t.Error("Sanitize(nil) should be nil")
	}
}
