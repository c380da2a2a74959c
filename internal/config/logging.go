package config

import (
	"path/filepath"

	"github.com/rshade/registrar/internal/logging"
)

// LogFileName is the log file used when the TUI needs one and none is configured.
const LogFileName = "registrar.log"

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	Level  string `yaml:"level"          validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format"         validate:"oneof=console json"`
	File   string `yaml:"file,omitempty"`
}

// ToLoggingConfig converts the section for logging.NewLoggerWithPath.
// A configured File selects file output; otherwise logs go to stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// WithFileFallback returns lc logging to <config dir>/registrar.log when no
// file is configured. The full-screen console uses it to keep the terminal clean.
func (lc LoggingConfig) WithFileFallback() LoggingConfig {
	if lc.File != "" {
		return lc
	}
	dir, err := GetConfigDir()
	if err != nil {
		return lc
	}
	lc.File = filepath.Join(dir, LogFileName)
	return lc
}
