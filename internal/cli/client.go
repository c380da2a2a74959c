package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/registrar/internal/backend"
	"github.com/rshade/registrar/internal/cache"
	"github.com/rshade/registrar/internal/config"
	"github.com/rshade/registrar/internal/logging"
)

// openCache opens the response cache described by cfg.
func openCache(cfg *config.Config) (*cache.FileStore, error) {
	dir, err := cfg.GetCacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolving cache directory: %w", err)
	}
	return cache.NewFileStore(dir, cfg.Cache.Enabled, cfg.CacheTTL())
}

// newBackendClient builds a records service client for cfg. An unusable cache
// directory disables caching instead of failing the command.
func newBackendClient(cmd *cobra.Command, cfg *config.Config) (*backend.Client, error) {
	opts := []backend.Option{backend.WithTimeout(cfg.Backend.Timeout)}
	if cfg.Backend.Token != "" {
		opts = append(opts, backend.WithToken(cfg.Backend.Token))
	}
	if cfg.Cache.Enabled {
		store, err := openCache(cfg)
		if err != nil {
			logging.FromContext(cmd.Context()).Warn().Err(err).Msg("response cache unavailable, continuing without it")
		} else {
			opts = append(opts, backend.WithCache(store))
		}
	}
	return backend.NewClient(cfg.Backend.URL, opts...)
}

// connect builds a client and, unless --skip-version-check is set, verifies
// that the service speaks a supported API version.
func connect(cmd *cobra.Command, cfg *config.Config) (*backend.Client, error) {
	client, err := newBackendClient(cmd, cfg)
	if err != nil {
		return nil, err
	}

	if skip, _ := cmd.Flags().GetBool("skip-version-check"); skip {
		return client, nil
	}
	v, err := client.CheckCompatible(cmd.Context())
	switch {
	case errors.Is(err, backend.ErrIncompatibleBackend):
		return nil, fmt.Errorf("%w (use --skip-version-check to connect anyway)", err)
	case err != nil:
		return nil, fmt.Errorf("contacting %s: %w", client.BaseURL(), err)
	}
	logging.FromContext(cmd.Context()).Debug().Str("version", v.String()).Msg("backend version accepted")
	return client, nil
}
