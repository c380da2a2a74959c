package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/registrar/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the user config file, the project
overlay, .env and REGISTRAR_* variables, and command-line flags.

This includes:
- Backend URL syntax and request timeout
- Page size bounds, and that the default page size is one of table.page_sizes
- Mobile column limit and locale tag
- Log level and format
- Per-view pagination mode overrides`,
		Example: `  # Validate current configuration
  registrar config validate

  # Validate and show detailed information
  registrar config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, config.GetGlobalConfig(), verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, cfg *config.Config, verbose bool) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Backend URL: %s\n", cfg.Backend.URL)
	cmd.Printf("  Backend timeout: %s\n", cfg.Backend.Timeout)
	cmd.Printf("  Page size: %d of %s\n", cfg.Table.PageSize, joinInts(cfg.Table.PageSizes))
	cmd.Printf("  Cards below width: %d\n", cfg.Table.CompactWidth)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	if cfg.Cache.Enabled {
		cmd.Printf("  Cache: enabled, TTL %s\n", cfg.CacheTTL())
	} else {
		cmd.Println("  Cache: disabled")
	}

	if len(cfg.Views) == 0 {
		cmd.Println("  No view overrides configured")
		return
	}
	cmd.Printf("  View overrides: %d\n", len(cfg.Views))
	for _, name := range slices.Sorted(maps.Keys(cfg.Views)) {
		vc := cfg.Views[name]
		cmd.Printf("    - %s (mode: %s, page size: %d)\n", name, orDefault(vc.Mode), vc.PageSize)
	}
}

func orDefault(s string) string {
	if s == "" {
		return "default"
	}
	return s
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
