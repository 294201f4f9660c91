package auth

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// FileStore implements CredentialStore as a plain two-line text file:
// the email on the first line, the password on the second. Blank lines
// and surrounding whitespace are ignored.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path
func (f *FileStore) Path() string {
	return f.path
}

// Store writes the credentials file with owner-only permissions
func (f *FileStore) Store(creds *Credentials) error {
	if creds == nil || creds.Email == "" || creds.Password == "" {
		return ErrInvalidCredentials
	}

	content := creds.Email + "\n" + creds.Password + "\n"
	if err := os.WriteFile(f.path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.path, err)
	}

	return nil
}

// Retrieve parses the credentials file. Anything other than exactly two
// non-empty lines is a format error naming the file.
func (f *FileStore) Retrieve() (*Credentials, error) {
	content, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	var lines []string
	for _, line := range strings.Split(string(content), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	if len(lines) != 2 {
		return nil, fmt.Errorf("%s must contain exactly two non-empty lines (email, then password), found %d", f.path, len(lines))
	}

	info, err := os.Stat(f.path)
	modified := time.Now()
	if err == nil {
		modified = info.ModTime()
	}

	return &Credentials{
		Email:        lines[0],
		Password:     lines[1],
		LastModified: modified,
	}, nil
}

// Delete removes the credentials file
func (f *FileStore) Delete() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return ErrCredentialsNotFound
	}
	return err
}

// Exists checks whether the credentials file is present
func (f *FileStore) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}
