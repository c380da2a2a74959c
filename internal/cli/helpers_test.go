package cli_test

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/rshade/registrar/internal/cli"
	"github.com/rshade/registrar/internal/config"
	"github.com/rshade/registrar/internal/fixture"
)

// setupCLITest isolates the test from the user's config, cache and
// environment, and resets global state afterwards.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvBackendURL, "")
	t.Setenv(config.EnvToken, "")
	t.Setenv(config.EnvPageSize, "")
	t.Setenv(config.EnvCacheEnabled, "false")
	t.Setenv(config.EnvProjectDir, "")
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// startFixture serves a seeded fixture on a loopback port and returns its
// base URL.
func startFixture(t *testing.T, opts ...fixture.ServerOption) string {
	t.Helper()
	store, err := fixture.Open(filepath.Join(t.TempDir(), "fixture.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	_, err = store.Seed(context.Background())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	app := fixture.NewServer(store, opts...)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String()
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}
