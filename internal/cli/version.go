package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/registrar/internal/backend"
	"github.com/rshade/registrar/internal/config"
)

// NewVersionCmd creates the version command. It prints the CLI version and,
// unless --client-only is set, the records service version and whether this
// CLI supports it.
func NewVersionCmd(ver string) *cobra.Command {
	var clientOnly bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the CLI and records service versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("registrar %s\n", ver)
			if clientOnly {
				return nil
			}

			client, err := newBackendClient(cmd, config.GetGlobalConfig())
			if err != nil {
				return err
			}
			v, info, err := client.Version(cmd.Context())
			if err != nil {
				return fmt.Errorf("contacting %s: %w", client.BaseURL(), err)
			}
			cmd.Printf("service %s %s at %s\n", info.Name, v, client.BaseURL())

			if err = backend.CheckVersion(v); err != nil {
				if errors.Is(err, backend.ErrIncompatibleBackend) {
					return &ExitError{Code: ExitCodeIncompatible, Err: err}
				}
				return err
			}
			cmd.Printf("compatible (supported %s)\n", backend.SupportedVersions)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clientOnly, "client-only", false, "only print the CLI version")
	return cmd
}
