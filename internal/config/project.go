package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rshade/registrar/internal/logging"
)

// ProjectFileName is the project-local overlay searched for by ResolveProjectFile.
const ProjectFileName = ".registrar.yaml"

// ResolveProjectFile locates the project-local config overlay. It checks, in
// order:
//  1. flagValue (--project-dir)
//  2. REGISTRAR_PROJECT_DIR
//  3. a walk up from startDir
//
// It returns the absolute overlay path, or "" when none exists.
func ResolveProjectFile(ctx context.Context, flagValue, startDir string) string {
	explicit := flagValue
	if explicit == "" {
		explicit = os.Getenv(EnvProjectDir)
	}
	if explicit != "" {
		path := filepath.Join(absDir(ctx, explicit), ProjectFileName)
		if fileExists(path) {
			return path
		}
		return ""
	}

	dir := absDir(ctx, startDir)
	for {
		path := filepath.Join(dir, ProjectFileName)
		if fileExists(path) {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// NewWithProjectFile loads the user config then shallow-merges the project
// overlay on top. Environment overrides are applied last. A broken overlay is
// logged and skipped.
func NewWithProjectFile(ctx context.Context, projectFile string) (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadWithOverlay(ctx, path, projectFile)
}

// LoadWithOverlay is NewWithProjectFile with an explicit user config path.
func LoadWithOverlay(ctx context.Context, path, overlay string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil || overlay == "" {
		return cfg, err
	}

	merged := *cfg
	if err = ShallowMergeYAML(&merged, overlay); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlay).
			Msg("failed to merge project config, using user config")
		return cfg, nil
	}
	if err = merged.ApplyEnv(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func absDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		return dir
	}
	return abs
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
