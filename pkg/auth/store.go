// Package auth holds the credential schemes used against the search API and
// the local stores the API token can be resolved from.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

var (
	// ErrTokenNotFound indicates no token is stored in a given store.
	ErrTokenNotFound = errors.New("API token not found")
	// ErrStoreUnavailable indicates the store cannot be used on this system.
	ErrStoreUnavailable = errors.New("token store unavailable")
)

// TokenStore is the interface for persisting the search API token.
type TokenStore interface {
	// Store saves the token.
	Store(token string) error

	// Retrieve gets the stored token.
	Retrieve() (string, error)

	// Delete removes the stored token.
	Delete() error

	// Exists checks whether a token is stored.
	Exists() bool
}

// Manager resolves the API token through an ordered chain of stores: system
// keyring first, encrypted file second, environment variables last.
type Manager struct {
	stores []TokenStore
}

// NewManager creates a token manager with the available storage backends.
func NewManager() (*Manager, error) {
	var stores []TokenStore

	// Keyring may be unavailable (headless hosts, missing dbus)
	if keyringStore, err := NewKeyringStore(); err == nil {
		stores = append(stores, keyringStore)
	}

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	encryptedStore, err := NewEncryptedFileStore(filepath.Join(configDir, "token.enc"))
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, encryptedStore)

	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// Store saves the token using the first store that accepts it.
func (m *Manager) Store(token string) error {
	if token == "" {
		return errors.New("token is required")
	}

	var lastErr error
	for _, store := range m.stores {
		if err := store.Store(token); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("no store accepted the token: %w", lastErr)
}

// Retrieve returns the token from the first store that has one.
func (m *Manager) Retrieve() (string, error) {
	for _, store := range m.stores {
		token, err := store.Retrieve()
		if err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrTokenNotFound
}

// Delete removes the token from every store that holds one.
func (m *Manager) Delete() error {
	var errs []error
	for _, store := range m.stores {
		if !store.Exists() {
			continue
		}
		if err := store.Delete(); err != nil && !errors.Is(err, ErrStoreUnavailable) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Exists reports whether any store holds a token.
func (m *Manager) Exists() bool {
	for _, store := range m.stores {
		if store.Exists() {
			return true
		}
	}
	return false
}

// getConfigDir returns the per-user config directory for stored credentials.
func getConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDir = filepath.Join(xdg, "tweetgrid")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config", "tweetgrid")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "tweetgrid")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		configDir = filepath.Join(appData, "tweetgrid")
	default:
		return "", fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}
