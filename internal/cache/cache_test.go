package cache

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry(t *testing.T) {
	data := json.RawMessage(`{"content":[]}`)
	entry := NewEntry("k", "/api/students", data, 60)

	assert.Equal(t, "k", entry.Key)
	assert.False(t, entry.IsExpired())
	assert.Greater(t, entry.TimeUntilExpiration(), 59*time.Second)
	assert.Less(t, entry.Age(), time.Second)

	t.Run("expired", func(t *testing.T) {
		e := NewEntry("k", "", data, 60)
		e.ExpiresAt = time.Now().Add(-time.Second)
		assert.True(t, e.IsExpired())
		assert.Equal(t, time.Duration(0), e.TimeUntilExpiration())
	})

	t.Run("json", func(t *testing.T) {
		encoded, err := json.Marshal(entry)
		require.NoError(t, err)

		var decoded Entry
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, entry.Key, decoded.Key)
		assert.Equal(t, entry.Path, decoded.Path)
		assert.JSONEq(t, string(data), string(decoded.Data))
		assert.True(t, entry.ExpiresAt.Equal(decoded.ExpiresAt))
	})

	t.Run("bad timestamp", func(t *testing.T) {
		var decoded Entry
		assert.Error(t, json.Unmarshal([]byte(`{"key":"k","created_at":"yesterday","expires_at":""}`), &decoded))
	})
}

func TestGenerateKey(t *testing.T) {
	a := GenerateKey(KeyParams{
		Operation: "page",
		Path:      "http://localhost:8080/api/students/paged",
		Query:     url.Values{"page": {"2"}, "size": {"25"}},
	})
	b := GenerateKey(KeyParams{
		Operation: " PAGE ",
		Path:      "http://localhost:8080/api/students/paged/",
		Query:     url.Values{"size": {"25"}, "page": {"2"}},
	})
	c := GenerateKey(KeyParams{
		Operation: "page",
		Path:      "http://localhost:8080/api/students/paged",
		Query:     url.Values{"page": {"3"}, "size": {"25"}},
	})

	assert.Len(t, a, 64)
	assert.Equal(t, a, b, "normalized params produce the same key")
	assert.NotEqual(t, a, c)
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	store, err := NewFileStore(dir, true, time.Minute)
	require.NoError(t, err)
	require.True(t, store.IsEnabled())
	assert.Equal(t, dir, store.Directory())
	assert.Equal(t, time.Minute, store.TTL())

	data := json.RawMessage(`{"id":1}`)

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, store.Set("key1", "/api/courses/1", data))

		entry, err := store.Get("key1")
		require.NoError(t, err)
		assert.JSONEq(t, string(data), string(entry.Data))
		assert.Equal(t, "/api/courses/1", entry.Path)

		st, err := store.Stats()
		require.NoError(t, err)
		assert.Equal(t, 1, st.Entries)
		assert.Zero(t, st.Expired)
		assert.Positive(t, st.SizeBytes)
	})

	t.Run("missing and invalid keys", func(t *testing.T) {
		_, err := store.Get("nope")
		assert.ErrorIs(t, err, ErrCacheNotFound)
		_, err = store.Get("")
		assert.ErrorIs(t, err, ErrInvalidCacheKey)
		assert.ErrorIs(t, store.Set("", "", data), ErrInvalidCacheKey)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, store.Delete("key1"))
		require.NoError(t, store.Delete("key1"))
		_, err := store.Get("key1")
		assert.ErrorIs(t, err, ErrCacheNotFound)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, store.Set("a", "", data))
		require.NoError(t, store.Set("b", "", data))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("keep"), 0o600))

		require.NoError(t, store.Clear())
		st, err := store.Stats()
		require.NoError(t, err)
		assert.Zero(t, st.Entries)
		assert.FileExists(t, filepath.Join(dir, "README"))
	})

	t.Run("expired entries", func(t *testing.T) {
		require.NoError(t, store.Set("stale", "", data))
		require.NoError(t, store.Set("fresh", "", data))
		rewriteExpiry(t, store, "stale", time.Now().Add(-time.Minute))

		st, err := store.Stats()
		require.NoError(t, err)
		assert.Equal(t, 2, st.Entries)
		assert.Equal(t, 1, st.Expired)

		require.NoError(t, store.CleanupExpired())
		st, err = store.Stats()
		require.NoError(t, err)
		assert.Equal(t, 1, st.Entries)

		require.NoError(t, store.Set("stale", "", data))
		rewriteExpiry(t, store, "stale", time.Now().Add(-time.Minute))
		_, err = store.Get("stale")
		assert.ErrorIs(t, err, ErrCacheExpired)
		assert.NoFileExists(t, store.keyToFilePath("stale"))
	})
}

func rewriteExpiry(t *testing.T, s *FileStore, key string, at time.Time) {
	t.Helper()
	entry, err := s.read(s.keyToFilePath(key))
	require.NoError(t, err)
	entry.ExpiresAt = at
	raw, err := json.Marshal(entry)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.keyToFilePath(key), raw, 0o600))
}

func TestFileStore_Disabled(t *testing.T) {
	for _, tt := range []struct {
		name    string
		enabled bool
		ttl     time.Duration
	}{
		{"disabled", false, time.Minute},
		{"zero ttl", true, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewFileStore(t.TempDir(), tt.enabled, tt.ttl)
			require.NoError(t, err)
			assert.False(t, store.IsEnabled())
			assert.ErrorIs(t, store.Set("k", "", json.RawMessage(`1`)), ErrCacheDisabled)
			_, err = store.Get("k")
			assert.ErrorIs(t, err, ErrCacheDisabled)
			assert.ErrorIs(t, store.Clear(), ErrCacheDisabled)
		})
	}

	_, err := NewFileStore("", true, time.Minute)
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30s", FormatDuration(30*time.Second))
	assert.Equal(t, "5m", FormatDuration(5*time.Minute))
	assert.Equal(t, "2h", FormatDuration(2*time.Hour))
	assert.Equal(t, "2h30m", FormatDuration(2*time.Hour+30*time.Minute))
	assert.Equal(t, "3d", FormatDuration(72*time.Hour))
	assert.Equal(t, "3d2h", FormatDuration(74*time.Hour))
}
