package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/rshade/registrar/internal/pager"
	"github.com/rshade/registrar/internal/table"
)

// Defaults applied by Default.
const (
	DefaultBackendURL     = "http://localhost:8080"
	DefaultBackendTimeout = 10 * time.Second
	DefaultPageSize       = table.DefaultPageSize
	DefaultMobileColumns  = table.DefaultMobileColumnLimit
	DefaultCompactWidth   = 80
	DefaultLocale         = "en"
	DefaultCacheTTL       = 300
	DefaultOutputFormat   = "table"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"

	configFileName = "config.yaml"
	configFileMode = 0o600
)

// Pagination modes accepted in ViewConfig.Mode.
const (
	ModeServer = "server"
	ModeClient = "client"
)

// Config is the registrar configuration file.
type Config struct {
	Backend BackendConfig         `yaml:"backend"`
	Table   TableConfig           `yaml:"table"`
	Cache   CacheConfig           `yaml:"cache"`
	Logging LoggingConfig         `yaml:"logging"`
	Output  OutputConfig          `yaml:"output"`
	Views   map[string]ViewConfig `yaml:"views,omitempty" validate:"omitempty,dive"`
}

// BackendConfig locates the records service.
type BackendConfig struct {
	URL     string        `yaml:"url"             validate:"required,url"`
	Token   string        `yaml:"token,omitempty"`
	Timeout time.Duration `yaml:"timeout"         validate:"gt=0"`
}

// TableConfig feeds the table engine.
type TableConfig struct {
	PageSize      int    `yaml:"page_size"      validate:"gte=1"`
	PageSizes     []int  `yaml:"page_sizes"     validate:"min=1,dive,gte=1"`
	MobileColumns int    `yaml:"mobile_columns" validate:"gte=1"`
	CompactWidth  int    `yaml:"compact_width"  validate:"gte=0"`
	Locale        string `yaml:"locale"         validate:"required,bcp47_language_tag"`
	GroupDigits   bool   `yaml:"group_digits"`
}

// CacheConfig controls the backend response cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds"   validate:"gte=0"`
	Dir        string `yaml:"dir,omitempty"`
}

// OutputConfig holds output defaults for the list and show commands.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" validate:"oneof=table cards plain json yaml"`
}

// ViewConfig overrides a resource's defaults.
type ViewConfig struct {
	Mode     string `yaml:"mode,omitempty"      validate:"omitempty,oneof=server client"`
	PageSize int    `yaml:"page_size,omitempty" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:     DefaultBackendURL,
			Timeout: DefaultBackendTimeout,
		},
		Table: TableConfig{
			PageSize:      DefaultPageSize,
			PageSizes:     append([]int(nil), pager.DefaultPageSizes...),
			MobileColumns: DefaultMobileColumns,
			CompactWidth:  DefaultCompactWidth,
			Locale:        DefaultLocale,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: DefaultCacheTTL,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
		},
	}
}

// New returns the defaults overlaid with the user's config file and the
// environment. A missing config file is not an error.
func New() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load reads path over the defaults, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err = cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, configFileMode); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// ViewFor returns the overrides for resource, zero when none are set.
func (c *Config) ViewFor(resource string) ViewConfig {
	return c.Views[resource]
}

// ToTableConfig converts the table section into an engine configuration.
func (t TableConfig) ToTableConfig() (table.Config, error) {
	tag, err := language.Parse(t.Locale)
	if err != nil {
		return table.Config{}, fmt.Errorf("parsing locale %q: %w", t.Locale, err)
	}
	cfg := table.DefaultConfig()
	cfg.DefaultPageSize = t.PageSize
	cfg.PageSizes = append([]int(nil), t.PageSizes...)
	cfg.MobileColumnLimit = t.MobileColumns
	cfg.Locale = tag
	cfg.GroupDigits = t.GroupDigits
	return cfg, nil
}
