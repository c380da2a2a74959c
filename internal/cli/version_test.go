package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/registrar/internal/backend"
	"github.com/rshade/registrar/internal/cli"
	"github.com/rshade/registrar/internal/fixture"
)

func TestVersion(t *testing.T) {
	setupCLITest(t)

	t.Run("client only", func(t *testing.T) {
		out, err := execute(t, "version", "--client-only")
		require.NoError(t, err)
		assert.Equal(t, "registrar test\n", out)
	})

	t.Run("compatible service", func(t *testing.T) {
		base := startFixture(t)
		out, err := execute(t, "version", "--backend-url", base)
		require.NoError(t, err)
		assert.Contains(t, out, "service "+fixture.Name+" "+fixture.Version)
		assert.Contains(t, out, "compatible (supported "+backend.SupportedVersions+")")
	})

	t.Run("incompatible service", func(t *testing.T) {
		base := startFixture(t, fixture.WithVersion("0.9.0"))
		_, err := execute(t, "version", "--backend-url", base)
		require.Error(t, err)
		assert.ErrorIs(t, err, backend.ErrIncompatibleBackend)
		assert.Equal(t, cli.ExitCodeIncompatible, cli.ExitCode(err))
	})
}

func TestRootCmd(t *testing.T) {
	setupCLITest(t)
	root := cli.NewRootCmd("test")

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"list", "show", "browse", "config", "cache", "fixture", "version"} {
		assert.Contains(t, names, want)
	}
	for _, flag := range []string{"debug", "backend-url", "no-cache", "project-dir", "skip-version-check"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestBrowse_RequiresTerminal(t *testing.T) {
	setupCLITest(t)
	_, err := execute(t, "browse", "courses")
	assert.ErrorIs(t, err, cli.ErrNotInteractive)
}
