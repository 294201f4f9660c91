package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Credentials holds the Untappd login the operator types during the
// manual sign-in step. They are never submitted programmatically; the
// tool only stores them and shows the email as a hint.
type Credentials struct {
	Email        string    `json:"email"`
	Password     string    `json:"password"`
	LastModified time.Time `json:"last_modified"`
}

// CredentialStore stores and retrieves the single Untappd login
type CredentialStore interface {
	// Store saves the credentials
	Store(creds *Credentials) error

	// Retrieve gets the stored credentials
	Retrieve() (*Credentials, error)

	// Delete removes the stored credentials
	Delete() error

	// Exists checks whether credentials are stored
	Exists() bool
}

// Manager layers credential stores with fallback. Retrieval walks the
// chain and returns the first hit; storing uses the first backend that
// accepts a write.
type Manager struct {
	stores []CredentialStore
}

// NewManager builds the default store chain: the plain credentials file
// named in the config, then the system keychain, then an encrypted file,
// then environment variables.
func NewManager(credentialsFile string) (*Manager, error) {
	var stores []CredentialStore

	if credentialsFile != "" {
		stores = append(stores, NewFileStore(credentialsFile))
	}

	if keyringStore, err := NewKeyringStore(); err == nil {
		stores = append(stores, keyringStore)
	}

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	encryptedStore, err := NewEncryptedFileStore(filepath.Join(configDir, "credentials.enc"))
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, encryptedStore)

	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// Store saves credentials using the first store that accepts them
func (m *Manager) Store(creds *Credentials) error {
	if creds == nil || creds.Email == "" {
		return errors.New("email is required")
	}
	if creds.Password == "" {
		return errors.New("password is required")
	}

	creds.LastModified = time.Now()

	var lastErr error
	for _, store := range m.stores {
		if err := store.Store(creds); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store credentials: %w", lastErr)
	}
	return errors.New("no available credential stores")
}

// Retrieve gets credentials from the first store that has them
func (m *Manager) Retrieve() (*Credentials, error) {
	for _, store := range m.stores {
		if creds, err := store.Retrieve(); err == nil && creds != nil {
			return creds, nil
		}
	}
	return nil, ErrCredentialsNotFound
}

// Exists reports whether any store holds credentials
func (m *Manager) Exists() bool {
	for _, store := range m.stores {
		if store.Exists() {
			return true
		}
	}
	return false
}

// Delete removes credentials from every store that holds them
func (m *Manager) Delete() error {
	var deleted bool
	var lastErr error

	for _, store := range m.stores {
		if err := store.Delete(); err == nil {
			deleted = true
		} else if !errors.Is(err, ErrCredentialsNotFound) && !errors.Is(err, ErrStoreUnavailable) {
			lastErr = err
		}
	}

	if !deleted && lastErr != nil {
		return fmt.Errorf("failed to delete credentials: %w", lastErr)
	}
	if !deleted {
		return ErrCredentialsNotFound
	}

	return nil
}

// getConfigDir returns the configuration directory path
func getConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "utscraper")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "utscraper")
	default: // Linux and others
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			configDir = filepath.Join(xdgConfig, "utscraper")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config", "utscraper")
		}
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// Sanitize returns a copy with the password masked for display
func Sanitize(creds *Credentials) *Credentials {
	if creds == nil {
		return nil
	}

	return &Credentials{
		Email:        creds.Email,
		Password:     maskString(creds.Password),
		LastModified: creds.LastModified,
	}
}

// maskString masks all but the first and last characters of a string
func maskString(s string) string {
	if len(s) <= 4 {
		return "********"
	}
	return s[:1] + "******" + s[len(s)-1:]
}

// Errors
var (
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrStoreUnavailable    = errors.New("credential store unavailable")
)
