package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/registrar/internal/cache"
	"github.com/rshade/registrar/internal/config"
	"github.com/rshade/registrar/internal/views"
)

func cacheStats(t *testing.T) cache.Stats {
	t.Helper()
	out, err := execute(t, "cache", "stats", "--output", "json")
	require.NoError(t, err, out)
	var st cache.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &st), out)
	return st
}

func TestCache(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvCacheEnabled, "true")
	base := startFixture(t)

	assert.Zero(t, cacheStats(t).Entries)

	_, err := execute(t, "list", views.Courses, "--backend-url", base, "--output", "json")
	require.NoError(t, err)
	assert.Positive(t, cacheStats(t).Entries, "list responses are cached")

	out, err := execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache cleared")
	assert.Zero(t, cacheStats(t).Entries)
}

func TestCache_NoCacheFlag(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvCacheEnabled, "true")
	base := startFixture(t)

	_, err := execute(t, "list", views.Courses, "--backend-url", base, "--no-cache", "--output", "json")
	require.NoError(t, err)
	assert.Zero(t, cacheStats(t).Entries)
}

func TestCacheStats_Disabled(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Status:    disabled")
}
