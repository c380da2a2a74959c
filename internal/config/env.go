package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvHome         = "REGISTRAR_HOME"
	EnvProjectDir   = "REGISTRAR_PROJECT_DIR"
	EnvBackendURL   = "REGISTRAR_BACKEND_URL"
	EnvToken        = "REGISTRAR_TOKEN"
	EnvLogLevel     = "REGISTRAR_LOG_LEVEL"
	EnvLogFormat    = "REGISTRAR_LOG_FORMAT"
	EnvLogFile      = "REGISTRAR_LOG_FILE"
	EnvPageSize     = "REGISTRAR_PAGE_SIZE"
	EnvCacheEnabled = "REGISTRAR_CACHE_ENABLED"
	EnvCacheTTL     = "REGISTRAR_CACHE_TTL"
)

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given). Variables already set in the process win. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from REGISTRAR_* variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvBackendURL); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		c.Backend.Token = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		c.Table.PageSize = n
	}
	if v := os.Getenv(EnvCacheEnabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCacheEnabled, err)
		}
		c.Cache.Enabled = b
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCacheTTL, err)
		}
		c.Cache.TTLSeconds = n
	}
	return nil
}
