package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SupportedVersions is the service API range this client speaks.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// VersionInfo is the /api/version document.
type VersionInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Version fetches and parses the service version.
func (c *Client) Version(ctx context.Context) (*semver.Version, VersionInfo, error) {
	var info VersionInfo
	body, err := c.get(ctx, opVersion, []string{"version"}, nil)
	if err != nil {
		return nil, info, err
	}
	if err = json.Unmarshal(body, &info); err != nil {
		return nil, info, fmt.Errorf("%w: version: %w", ErrBadResponse, err)
	}
	v, err := semver.NewVersion(info.Version)
	if err != nil {
		return nil, info, fmt.Errorf("%w: version %q: %w", ErrBadResponse, info.Version, err)
	}
	return v, info, nil
}

// CheckCompatible returns ErrIncompatibleBackend unless the service version
// satisfies SupportedVersions.
func (c *Client) CheckCompatible(ctx context.Context) (*semver.Version, error) {
	v, _, err := c.Version(ctx)
	if err != nil {
		return nil, err
	}
	if err = CheckVersion(v); err != nil {
		return v, err
	}
	return v, nil
}

// CheckVersion tests v against SupportedVersions.
func CheckVersion(v *semver.Version) error {
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if ok, reasons := constraint.Validate(v); !ok {
		msg := v.String()
		if len(reasons) > 0 {
			msg = reasons[0].Error()
		}
		return fmt.Errorf("%w: %s (supported %s)", ErrIncompatibleBackend, msg, SupportedVersions)
	}
	return nil
}
