package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyBackend = "backend"
	keyTable   = "table"
	keyCache   = "cache"
	keyLogging = "logging"
	keyOutput  = "output"
	keyViews   = "views"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyBackend: true,
	keyTable:   true,
	keyCache:   true,
	keyLogging: true,
	keyOutput:  true,
	keyViews:   true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Keys present in the overlay replace entire sections
// in the target. Keys absent in the overlay are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	for key, node := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// decodeSection decodes node into a fresh value of the section named key and
// replaces that section of target.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyBackend:
		var v BackendConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Backend = v
	case keyTable:
		var v TableConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Table = v
	case keyCache:
		var v CacheConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Cache = v
	case keyLogging:
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyOutput:
		var v OutputConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyViews:
		var v map[string]ViewConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Views = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
