package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rshade/registrar/internal/config"
	"github.com/rshade/registrar/internal/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		config.EnvBackendURL, config.EnvToken, config.EnvLogLevel, config.EnvLogFormat,
		config.EnvLogFile, config.EnvPageSize, config.EnvCacheEnabled, config.EnvCacheTTL,
		config.EnvProjectDir,
	} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "http://localhost:8080", cfg.Backend.URL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 25, cfg.Table.PageSize)
	assert.Equal(t, []int{10, 25, 50, 100}, cfg.Table.PageSizes)
	assert.Equal(t, 4, cfg.Table.MobileColumns)
	assert.Equal(t, 80, cfg.Table.CompactWidth)
	assert.Equal(t, "en", cfg.Table.Locale)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(dir, "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeFile(t, dir, "config.yaml", `
backend:
  url: https://records.example.edu
  timeout: 3s
table:
  page_size: 50
  page_sizes: [25, 50]
  mobile_columns: 3
  locale: de
views:
  courses:
    mode: server
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://records.example.edu", cfg.Backend.URL)
		assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
		assert.Equal(t, 50, cfg.Table.PageSize)
		assert.Equal(t, []int{25, 50}, cfg.Table.PageSizes)
		assert.Equal(t, "de", cfg.Table.Locale)
		assert.Equal(t, config.ModeServer, cfg.ViewFor("courses").Mode)
		assert.Empty(t, cfg.ViewFor("students").Mode)
		assert.True(t, cfg.Cache.Enabled, "sections absent from the file keep defaults")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, dir, "bad.yaml", "backend: [unclosed")
		_, err := config.Load(path)
		assert.ErrorContains(t, err, "parsing config")
	})
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvBackendURL, "http://10.0.0.5:9000")
	t.Setenv(config.EnvToken, "s3cret")
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvPageSize, "10")
	t.Setenv(config.EnvCacheEnabled, "false")
	t.Setenv(config.EnvCacheTTL, "60")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", cfg.Backend.URL)
	assert.Equal(t, "s3cret", cfg.Backend.Token)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Table.PageSize)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Minute, cfg.CacheTTL())

	t.Setenv(config.EnvPageSize, "many")
	_, err = config.Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorContains(t, err, config.EnvPageSize)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv(config.EnvToken))
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "REGISTRAR_TOKEN=from-dotenv\nREGISTRAR_LOG_LEVEL=warn\n")
	t.Setenv(config.EnvLogLevel, "error")

	require.NoError(t, config.LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-dotenv", os.Getenv(config.EnvToken))
	assert.Equal(t, "error", os.Getenv(config.EnvLogLevel), "existing variables win")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantMsg string
	}{
		{"missing url", func(c *config.Config) { c.Backend.URL = "" }, "Backend.URL is required"},
		{"bad url", func(c *config.Config) { c.Backend.URL = "not a url" }, "Backend.URL must be a URL"},
		{"zero timeout", func(c *config.Config) { c.Backend.Timeout = 0 }, "Backend.Timeout"},
		{"page size not selectable", func(c *config.Config) { c.Table.PageSize = 30 }, "is not one of table.page_sizes"},
		{"zero mobile columns", func(c *config.Config) { c.Table.MobileColumns = 0 }, "Table.MobileColumns"},
		{"bad locale", func(c *config.Config) { c.Table.Locale = "??" }, "BCP 47"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "loud" }, "Logging.Level must be one of"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "Logging.Format must be one of"},
		{"bad output", func(c *config.Config) { c.Output.DefaultFormat = "csv" }, "Output.DefaultFormat"},
		{"bad view mode", func(c *config.Config) {
			c.Views = map[string]config.ViewConfig{"grades": {Mode: "hybrid"}}
		}, "Mode must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestToTableConfig(t *testing.T) {
	tc := config.Default().Table
	tc.PageSize = 50
	tc.MobileColumns = 2
	tc.Locale = "fr"

	got, err := tc.ToTableConfig()
	require.NoError(t, err)
	assert.Equal(t, 50, got.DefaultPageSize)
	assert.Equal(t, 2, got.MobileColumnLimit)
	assert.Equal(t, language.French, got.Locale)
	assert.Equal(t, "No data", got.EmptyText)
	assert.False(t, got.GroupDigits)

	tc.GroupDigits = true
	got, err = tc.ToTableConfig()
	require.NoError(t, err)
	assert.True(t, got.GroupDigits)

	tc.Locale = "not_a_tag!"
	_, err = tc.ToTableConfig()
	assert.Error(t, err)
}

func TestSave(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.Default()
	cfg.Backend.URL = "https://api.example.edu"
	cfg.Backend.Timeout = 2500 * time.Millisecond

	require.NoError(t, cfg.Save(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 2.5s")

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	assert.Equal(t, logging.Config{Level: "debug", Format: "json", Output: logging.OutputStderr}, lc.ToLoggingConfig())

	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	withFile := lc.WithFileFallback()
	assert.Equal(t, filepath.Join(home, config.LogFileName), withFile.File)
	assert.Equal(t, logging.OutputFile, withFile.ToLoggingConfig().Output)

	lc.File = "/var/log/registrar.log"
	assert.Equal(t, "/var/log/registrar.log", lc.WithFileFallback().File)
}

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)

	dir, err := config.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)

	path, err := config.ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), path)

	cfg := config.Default()
	cacheDir, err := cfg.GetCacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cache"), cacheDir)

	cfg.Cache.Dir = "/tmp/elsewhere"
	cacheDir, err = cfg.GetCacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere", cacheDir)

	cfg.Logging.File = filepath.Join(home, "logs", "r.log")
	require.NoError(t, cfg.EnsureLogDir())
	assert.DirExists(t, filepath.Join(home, "logs"))
}

func TestGlobalConfig(t *testing.T) {
	t.Cleanup(config.ResetGlobalConfigForTest)

	config.ResetGlobalConfigForTest()
	assert.Equal(t, config.Default(), config.GetGlobalConfig())

	cfg := config.Default()
	cfg.Backend.URL = "http://installed"
	config.SetGlobalConfig(cfg)
	assert.Same(t, cfg, config.GetGlobalConfig())
}
