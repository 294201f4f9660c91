package auth

import (
	"os"
	"time"
)

// EnvironmentStore implements CredentialStore using environment variables.
// It is read-only and mainly serves CI and scripted runs.
type EnvironmentStore struct{}

// NewEnvironmentStore creates an environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(creds *Credentials) error {
	return ErrStoreUnavailable
}

// Retrieve gets the login from UTSCRAPER_EMAIL and UTSCRAPER_PASSWORD
func (e *EnvironmentStore) Retrieve() (*Credentials, error) {
	email := os.Getenv("UTSCRAPER_EMAIL")
	password := os.Getenv("UTSCRAPER_PASSWORD")

	if email == "" || password == "" {
		return nil, ErrCredentialsNotFound
	}

	return &Credentials{
		Email:        email,
		Password:     password,
		LastModified: time.Now(),
	}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete() error {
	return ErrStoreUnavailable
}

// Exists checks if environment credentials are set
func (e *EnvironmentStore) Exists() bool {
	return os.Getenv("UTSCRAPER_EMAIL") != "" && os.Getenv("UTSCRAPER_PASSWORD") != ""
}
