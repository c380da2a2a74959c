package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/registrar/internal/config"
	"github.com/rshade/registrar/internal/logging"
)

// annotationLogToFile marks commands that own the terminal. Their logs go to
// a file even when none is configured.
const annotationLogToFile = "registrar/log-to-file"

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	debug      bool
	backendURL string
	noCache    bool
	projectDir string
}

// NewRootCmd creates the root Cobra command for the registrar CLI.
// It loads configuration, wires logging and tracing, and registers the
// list, show, browse, config, cache, fixture and version subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		flags     globalFlags
		logResult *logging.LogPathResult
	)

	cmd := &cobra.Command{
		Use:           "registrar",
		Short:         "Academic records console",
		Long:          "registrar: browse students, courses, categories and grades from a records service",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd, cfg, flags.debug)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.backendURL, "backend-url", "",
		"records service URL (overrides config file and REGISTRAR_BACKEND_URL)")
	cmd.PersistentFlags().BoolVar(&flags.noCache, "no-cache", false, "bypass the response cache")
	cmd.PersistentFlags().
		Bool("skip-version-check", false, "skip the records service API version compatibility check")
	cmd.PersistentFlags().StringVar(&flags.projectDir, "project-dir", "",
		"directory holding a "+config.ProjectFileName+" overlay (default: search upward from the working directory)")

	cmd.AddCommand(
		NewListCmd(), NewShowCmd(), NewBrowseCmd(),
		newConfigCmd(), newCacheCmd(), newFixtureCmd(), NewVersionCmd(ver),
	)

	return cmd
}

// loadConfig builds the effective configuration: defaults, the user config
// file, the project overlay, .env and REGISTRAR_* variables, then flags.
func loadConfig(cmd *cobra.Command, flags globalFlags) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	overlay := config.ResolveProjectFile(ctx, flags.projectDir, wd)

	cfg, err := config.NewWithProjectFile(ctx, overlay)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if flags.backendURL != "" {
		cfg.Backend.URL = flags.backendURL
	}
	if flags.noCache {
		cfg.Cache.Enabled = false
	}
	return cfg, nil
}

const rootCmdExample = `  # Start the development records service
  registrar fixture serve --seed

  # List the first page of students (server-side pagination)
  registrar list students

  # Sort courses by title, ten per page
  registrar list courses --sort title:desc --page-size 10

  # Search students on the service
  registrar list students --filter ada

  # Show a student with their grades
  registrar show students S24001

  # Open the full-screen console
  registrar browse courses

  # Initialize configuration
  registrar config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigShowCmd(),
		NewConfigValidateCmd(), NewConfigPathCmd(),
	)
	return cmd
}

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Response cache commands"}
	cmd.AddCommand(NewCacheStatsCmd(), NewCacheClearCmd())
	return cmd
}

// newFixtureCmd creates the fixture command group.
func newFixtureCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "fixture", Short: "Development records service"}
	cmd.AddCommand(NewFixtureServeCmd())
	return cmd
}
