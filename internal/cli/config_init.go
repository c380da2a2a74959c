package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/registrar/internal/config"
)

// projectOverlayTemplate seeds a new project overlay. Each top-level section
// present replaces the same section of the user config.
const projectOverlayTemplate = `# registrar project configuration.
# Top-level sections in this file replace the same sections of ~/.registrar/config.yaml.
views:
  students:
    mode: server
  grades:
    mode: server
  courses:
    mode: client
  categories:
    mode: client
`

// ErrConfigExists is returned by config init when the target file exists and
// --force is not set.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command for initializing configuration.
// By default it writes the user config with default values; with --project it
// writes a .registrar.yaml overlay into the project directory.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at
$REGISTRAR_HOME/config.yaml (default ~/.registrar/config.yaml), with a
.gitignore next to it that keeps the cache, logs and .env out of version control.

With --project, writes a ` + config.ProjectFileName + ` overlay in the current directory
(or --project-dir) instead.`,
		Example: `  # Create the user configuration
  registrar config init

  # Create a project overlay
  registrar config init --project

  # Create configuration, overwriting existing
  registrar config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if project {
				dir, _ := cmd.Flags().GetString("project-dir")
				if dir == "" {
					dir = "."
				}
				return initProjectConfig(cmd, dir, force)
			}
			return initUserConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "write a project overlay instead of the user configuration")

	return cmd
}

// checkWritable refuses to replace an existing file unless force is set.
func checkWritable(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}

// initProjectConfig writes dir/.registrar.yaml.
func initProjectConfig(cmd *cobra.Command, dir string, force bool) error {
	path := filepath.Join(dir, config.ProjectFileName)
	if err := checkWritable(path, force); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	//nolint:gosec // Project overlays are meant to be committed and shared (0644).
	if err := os.WriteFile(path, []byte(projectOverlayTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to save project configuration: %w", err)
	}

	cmd.Printf("Project configuration initialized at %s\n", path)
	return nil
}

// initUserConfig writes the user config with defaults and a .gitignore.
func initUserConfig(cmd *cobra.Command, force bool) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if err = checkWritable(path, force); err != nil {
		return err
	}

	if err = config.Default().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	created, err := config.EnsureGitignore(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)
	if created {
		cmd.Printf("Created .gitignore to keep the cache, logs and .env out of version control\n")
	}
	return nil
}
