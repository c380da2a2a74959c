package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/registrar/internal/config"
)

func TestShallowMergeYAML(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
		check   func(t *testing.T, c *config.Config)
	}{
		{
			name: "single section replaces whole section",
			overlay: `
table:
  page_size: 10
  page_sizes: [10, 20]
`,
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, 10, c.Table.PageSize)
				assert.Equal(t, []int{10, 20}, c.Table.PageSizes)
				assert.Zero(t, c.Table.MobileColumns, "absent keys inside a replaced section are zero")
				assert.Equal(t, "http://localhost:8080", c.Backend.URL)
			},
		},
		{
			name: "views and output",
			overlay: `
output:
  default_format: json
views:
  grades:
    mode: client
    page_size: 50
`,
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, "json", c.Output.DefaultFormat)
				assert.Equal(t, config.ViewConfig{Mode: config.ModeClient, PageSize: 50}, c.ViewFor("grades"))
				assert.Equal(t, 25, c.Table.PageSize)
			},
		},
		{
			name:    "unknown keys ignored",
			overlay: "theme:\n  accent: blue\n",
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, config.Default(), c)
			},
		},
		{
			name:    "comment only",
			overlay: "# nothing here\n",
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, config.Default(), c)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := config.Default()
			path := writeFile(t, t.TempDir(), "overlay.yaml", tt.overlay)
			require.NoError(t, config.ShallowMergeYAML(target, path))
			tt.check(t, target)
		})
	}
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	require.Error(t, config.ShallowMergeYAML(nil, "x"))
	require.Error(t, config.ShallowMergeYAML(config.Default(), filepath.Join(t.TempDir(), "missing.yaml")))

	path := writeFile(t, t.TempDir(), "bad.yaml", "table:\n  page_size: lots\n")
	err := config.ShallowMergeYAML(config.Default(), path)
	assert.ErrorContains(t, err, `"table"`)
}

func TestResolveProjectFile(t *testing.T) {
	clearEnv(t)
	ctx := context.Background()

	root := t.TempDir()
	overlay := writeFile(t, root, config.ProjectFileName, "output:\n  default_format: plain\n")
	deep := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	assert.Equal(t, overlay, config.ResolveProjectFile(ctx, "", deep), "walks up")
	assert.Equal(t, overlay, config.ResolveProjectFile(ctx, root, "/does/not/matter"), "flag")

	t.Setenv(config.EnvProjectDir, root)
	assert.Equal(t, overlay, config.ResolveProjectFile(ctx, "", "/does/not/matter"), "env")

	other := t.TempDir()
	assert.Empty(t, config.ResolveProjectFile(ctx, other, deep), "explicit dir without overlay")

	t.Setenv(config.EnvProjectDir, "")
	assert.Empty(t, config.ResolveProjectFile(ctx, "", other))
}

func TestLoadWithOverlay(t *testing.T) {
	clearEnv(t)
	ctx := context.Background()
	dir := t.TempDir()
	user := writeFile(t, dir, "config.yaml", "output:\n  default_format: cards\n")

	good := writeFile(t, dir, "good.yaml", "output:\n  default_format: yaml\n")
	cfg, err := config.LoadWithOverlay(ctx, user, good)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.DefaultFormat)

	t.Setenv(config.EnvBackendURL, "http://env-wins")
	broken := writeFile(t, dir, "broken.yaml", "output:\n  default_format: [x\n")
	cfg, err = config.LoadWithOverlay(ctx, user, broken)
	require.NoError(t, err)
	assert.Equal(t, "cards", cfg.Output.DefaultFormat)
	assert.Equal(t, "http://env-wins", cfg.Backend.URL)

	cfg, err = config.LoadWithOverlay(ctx, user, "")
	require.NoError(t, err)
	assert.Equal(t, "cards", cfg.Output.DefaultFormat)
}
