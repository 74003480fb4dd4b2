package authcache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akriva/portal/authcache"
	"github.com/akriva/portal/identity"
	"github.com/akriva/portal/session"
)

func testEntry() authcache.Entry {
	return authcache.Entry{
		Tokens: identity.Credentials{
			AccessToken:  "a1",
			IDToken:      "i1",
			RefreshToken: "r1",
			ExpiresIn:    3600,
		},
		User: session.User{
			ID:       "user-1",
			Email:    "jane.doe@example.com",
			TenantID: "tenant-1",
			Role:     session.RoleTenantAdmin,
		},
	}
}

func TestCacheLifecycle(t *testing.T) {
	storage := authcache.NewMemoryStorage()

	cache, err := authcache.New(storage)
	require.NoError(t, err)

	_, ok := cache.Get()
	require.False(t, ok)

	require.NoError(t, cache.Set(testEntry()))

	entry, ok := cache.Get()
	require.True(t, ok)
	require.Equal(t, "r1", entry.Tokens.RefreshToken)
	require.Equal(t, session.RoleTenantAdmin, entry.User.Role)

	// A second cache over the same storage sees the persisted entry.
	reloaded, err := authcache.New(storage)
	require.NoError(t, err)
	entry, ok = reloaded.Get()
	require.True(t, ok)
	require.Equal(t, "jane.doe@example.com", entry.User.Email)

	require.NoError(t, cache.Clear())
	_, ok = cache.Get()
	require.False(t, ok)

	empty, err := authcache.New(storage)
	require.NoError(t, err)
	_, ok = empty.Get()
	require.False(t, ok)
}

func TestCacheUpdateTokens(t *testing.T) {
	cache, err := authcache.New(authcache.NewMemoryStorage())
	require.NoError(t, err)

	t.Run("fails with no cached session", func(t *testing.T) {
		require.Error(t, cache.UpdateTokens(identity.Credentials{AccessToken: "a2"}))
	})

	require.NoError(t, cache.Set(testEntry()))

	t.Run("preserves refresh token when the provider omits rotation", func(t *testing.T) {
		require.NoError(t, cache.UpdateTokens(identity.Credentials{AccessToken: "a2", IDToken: "i2", ExpiresIn: 3600}))

		entry, ok := cache.Get()
		require.True(t, ok)
		require.Equal(t, "a2", entry.Tokens.AccessToken)
		require.Equal(t, "r1", entry.Tokens.RefreshToken)
	})

	t.Run("adopts a rotated refresh token", func(t *testing.T) {
		require.NoError(t, cache.UpdateTokens(identity.Credentials{AccessToken: "a3", IDToken: "i3", RefreshToken: "r3", ExpiresIn: 3600}))

		entry, ok := cache.Get()
		require.True(t, ok)
		require.Equal(t, "r3", entry.Tokens.RefreshToken)
	})
}

func TestCacheDiscardsCorruptState(t *testing.T) {
	storage := authcache.NewMemoryStorage()
	require.NoError(t, storage.Store([]byte("{not json")))

	cache, err := authcache.New(storage)
	require.NoError(t, err)

	_, ok := cache.Get()
	require.False(t, ok)

	data, err := storage.Load()
	require.NoError(t, err)
	require.Empty(t, data, "corrupt state should have been cleared")
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")

	storage, err := authcache.NewFileStorage(path)
	require.NoError(t, err)

	t.Run("load before first store is empty", func(t *testing.T) {
		data, err := storage.Load()
		require.NoError(t, err)
		require.Nil(t, data)
	})

	t.Run("store and load round trip with restrictive mode", func(t *testing.T) {
		require.NoError(t, storage.Store([]byte(`{"ok":true}`)))

		data, err := storage.Load()
		require.NoError(t, err)
		require.JSONEq(t, `{"ok":true}`, string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		require.NoError(t, storage.Clear())
		require.NoError(t, storage.Clear())

		data, err := storage.Load()
		require.NoError(t, err)
		require.Nil(t, data)
	})
}
