package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/registrar/internal/config"
)

const maskedToken = "********"

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration as YAML with the backend token masked.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after merging the user config file, the project
overlay, .env and REGISTRAR_* variables, and command-line flags.`,
		Example: `  registrar config show
  REGISTRAR_PAGE_SIZE=50 registrar config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *config.GetGlobalConfig()
			if cfg.Backend.Token != "" {
				cfg.Backend.Token = maskedToken
			}
			data, err := yaml.Marshal(&cfg)
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// NewConfigPathCmd creates the config path command.
func NewConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err = fmt.Fprintf(out, "config:  %s\n", path); err != nil {
				return err
			}

			projectDir, _ := cmd.Flags().GetString("project-dir")
			overlay := config.ResolveProjectFile(cmd.Context(), projectDir, ".")
			if overlay == "" {
				overlay = "(none)"
			}
			if _, err = fmt.Fprintf(out, "project: %s\n", overlay); err != nil {
				return err
			}

			cacheDir, err := config.GetGlobalConfig().GetCacheDir()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "cache:   %s\n", cacheDir)
			return err
		},
	}
}
