package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentStore(t *testing.T) {
	store := NewEnvironmentStore()

	t.Setenv("TWEETGRID_API_TOKEN", "")
	assert.False(t, store.Exists())
	_, err := store.Retrieve()
	assert.ErrorIs(t, err, ErrTokenNotFound)

	t.Setenv("TWEETGRID_API_TOKEN", "env-token")
	assert.True(t, store.Exists())
	token, err := store.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, "env-token", token)

	// The environment store is read-only.
	assert.ErrorIs(t, store.Store("x"), ErrStoreUnavailable)
	assert.ErrorIs(t, store.Delete(), ErrStoreUnavailable)
}

func TestEncryptedFileStoreRoundTrip(t *testing.T) {
	t.Setenv("TWEETGRID_PASSPHRASE", "test-passphrase")
	path := filepath.Join(t.TempDir(), "token.enc")

	store, err := NewEncryptedFileStore(path)
	require.NoError(t, err)

	assert.False(t, store.Exists())
	_, err = store.Retrieve()
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, store.Store("secret-token"))
	assert.True(t, store.Exists())

	token, err := store.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, "secret-token", token)

	// The token must not appear in the file as plaintext.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-token")

	require.NoError(t, store.Delete())
	assert.False(t, store.Exists())
}

func TestEncryptedFileStoreOverwrite(t *testing.T) {
	t.Setenv("TWEETGRID_PASSPHRASE", "test-passphrase")
	path := filepath.Join(t.TempDir(), "token.enc")

	store, err := NewEncryptedFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Store("first"))
	require.NoError(t, store.Store("second"))

	token, err := store.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}

func TestEncryptedFileStoreWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.enc")

	t.Setenv("TWEETGRID_PASSPHRASE", "right")
	store, err := NewEncryptedFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Store("secret"))

	t.Setenv("TWEETGRID_PASSPHRASE", "wrong")
	other, err := NewEncryptedFileStore(path)
	require.NoError(t, err)

	_, err = other.Retrieve()
	assert.Error(t, err)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := make([]byte, keySize)
	copy(key, "0123456789abcdef0123456789abcdef")

	ciphertext, err := encrypt([]byte("payload"), key)
	require.NoError(t, err)
	assert.NotEqual(t, []byte("payload"), ciphertext)

	plaintext, err := decrypt(ciphertext, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), plaintext)
}
