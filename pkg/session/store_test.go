package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Empty(t, store.Token())

	err = store.SetCredentials(Credentials{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		Identity: Identity{
			UserID:   "u1",
			Email:    "sharp@example.com",
			Username: "sharp",
			ClientID: "c1",
		},
	})
	require.NoError(t, err)

	// A fresh store over the same file sees the same session.
	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, "access-1", reloaded.Token())
	assert.Equal(t, "refresh-1", reloaded.RefreshToken())
	require.NotNil(t, reloaded.Identity())
	assert.Equal(t, "sharp", reloaded.Identity().Username)
	assert.Equal(t, "c1", reloaded.Identity().ClientID)
}

func TestFileStoreKeyNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SetCredentials(Credentials{
		AccessToken:  "a",
		RefreshToken: "r",
		Identity:     Identity{ClientID: "c1"},
	}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var kv map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &kv))

	// Key names are shared with the other platform clients.
	assert.Contains(t, kv, KeySessionToken)
	assert.Contains(t, kv, KeyRefreshToken)
	assert.Contains(t, kv, KeyUser)
	assert.Contains(t, kv, KeyClientID)
}

func TestFileStoreReadsLegacyKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	legacy := map[string]interface{}{
		"access_token": "legacy-token",
		"client":       "legacy-client",
	}
	raw, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, "legacy-token", store.Token())
	require.NotNil(t, store.Identity())
	assert.Equal(t, "legacy-client", store.Identity().ClientID)
}

func TestFileStoreClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SetCredentials(Credentials{AccessToken: "a"}))
	require.NoError(t, store.Clear())

	assert.Empty(t, store.Token())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-clean store is fine.
	require.NoError(t, store.Clear())
}

func TestFileStoreFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SetCredentials(Credentials{AccessToken: "a"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpiresWithin(t *testing.T) {
	store := NewMemoryStore()

	// Anonymous store never needs a refresh.
	assert.False(t, TokenExpiresWithin(store, time.Hour))

	require.NoError(t, store.SetCredentials(Credentials{
		AccessToken: signedToken(t, 5*time.Minute),
	}))
	assert.True(t, TokenExpiresWithin(store, 10*time.Minute))
	assert.False(t, TokenExpiresWithin(store, time.Minute))

	// Already-expired tokens report as expiring.
	require.NoError(t, store.SetCredentials(Credentials{
		AccessToken: signedToken(t, -time.Minute),
	}))
	assert.True(t, TokenExpiresWithin(store, time.Second))
}

func TestTokenExpiresWithinOpaqueToken(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.SetCredentials(Credentials{AccessToken: "not-a-jwt"}))

	// Tokens without a parseable exp claim never trigger a refresh.
	assert.False(t, TokenExpiresWithin(store, time.Hour))
}

func TestMemoryStoreIdentityIsCopy(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.SetCredentials(Credentials{
		AccessToken: "a",
		Identity:    Identity{Username: "sharp"},
	}))

	id := store.Identity()
	require.NotNil(t, id)
	id.Username = "mutated"

	assert.Equal(t, "sharp", store.Identity().Username)
}
