package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/registrar/internal/cache"
	"github.com/rshade/registrar/internal/config"
)

// NewCacheStatsCmd creates the cache stats command.
func NewCacheStatsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show response cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			stats, err := store.Stats()
			if err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
				return fmt.Errorf("reading cache: %w", err)
			}

			out := cmd.OutOrStdout()
			switch output {
			case formatJSON:
				return writeJSON(out, stats)
			case formatYAML:
				node, nodeErr := yamlMapping(
					"directory", stats.Directory,
					"entries", stats.Entries,
					"expired", stats.Expired,
					"size_bytes", stats.SizeBytes,
					"ttl", stats.TTL.String(),
				)
				if nodeErr != nil {
					return nodeErr
				}
				return writeYAML(out, node)
			case "", formatTable, formatPlain:
			default:
				return fmt.Errorf("%w: got %q", ErrInvalidOutput, output)
			}

			status := "enabled"
			if !store.IsEnabled() {
				status = "disabled"
			}
			_, err = fmt.Fprintf(out,
				"Directory: %s\nStatus:    %s\nEntries:   %d (%d expired)\nSize:      %d bytes\nTTL:       %s\n",
				stats.Directory, status, stats.Entries, stats.Expired, stats.SizeBytes,
				cache.FormatDuration(stats.TTL))
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, yaml")
	return cmd
}

// NewCacheClearCmd creates the cache clear command.
func NewCacheClearCmd() *cobra.Command {
	var expiredOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete cached responses",
		Example: `  # Delete everything
  registrar cache clear

  # Delete only expired entries
  registrar cache clear --expired`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *config.GetGlobalConfig()
			// Clearing works even with caching switched off.
			cfg.Cache.Enabled = true
			if cfg.Cache.TTLSeconds <= 0 {
				cfg.Cache.TTLSeconds = config.DefaultCacheTTL
			}
			store, err := openCache(&cfg)
			if err != nil {
				return err
			}

			if expiredOnly {
				err = store.CleanupExpired()
			} else {
				err = store.Clear()
			}
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			cmd.Printf("Cache cleared: %s\n", store.Directory())
			return nil
		},
	}

	cmd.Flags().BoolVar(&expiredOnly, "expired", false, "only delete expired entries")
	return cmd
}
