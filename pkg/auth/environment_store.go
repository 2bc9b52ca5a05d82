package auth

import "os"

// EnvironmentStore implements TokenStore using the TWEETGRID_API_TOKEN
// environment variable. Read-only; the last resort in the store chain.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based token store.
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables.
func (e *EnvironmentStore) Store(token string) error {
	return ErrStoreUnavailable
}

// Retrieve gets the token from the environment.
func (e *EnvironmentStore) Retrieve() (string, error) {
	token := os.Getenv("TWEETGRID_API_TOKEN")
	if token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}

// Delete is not supported for environment variables.
func (e *EnvironmentStore) Delete() error {
	return ErrStoreUnavailable
}

// Exists checks if the environment token is set.
func (e *EnvironmentStore) Exists() bool {
	return os.Getenv("TWEETGRID_API_TOKEN") != ""
}
