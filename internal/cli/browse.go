package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/registrar/internal/config"
	"github.com/rshade/registrar/internal/tui"
	"github.com/rshade/registrar/internal/views"
)

// ErrNotInteractive is returned when browse runs without a terminal.
var ErrNotInteractive = errors.New("browse needs an interactive terminal; use 'registrar list' instead")

// NewBrowseCmd creates the browse command, the full-screen records console.
func NewBrowseCmd() *cobra.Command {
	var (
		serverSide bool
		clientSide bool
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "browse [resource]",
		Short: "Open the full-screen records console",
		Long: `Opens the interactive console on a resource (students by default).

Keys: ↑/↓ move, enter opens a record, ←/→ change page, +/- change page size,
tab focuses a column, s sorts by it, [ and ] switch resource, / filters,
r reloads, esc goes back, ? shows all keys, q quits.

Logs are written to a file while the console is open.`,
		Example: `  # Browse students
  registrar browse

  # Browse courses, ten per page
  registrar browse courses --page-size 10`,
		Args:        cobra.MaximumNArgs(1),
		ValidArgs:   views.Names(),
		Annotations: map[string]string{annotationLogToFile: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			resource := views.Students
			if len(args) == 1 {
				resource = args[0]
			}
			override, err := serverSideOverride(listParams{serverSide: serverSide, clientSide: clientSide}, config.ViewConfig{})
			if err != nil {
				return err
			}
			return runBrowse(cmd, resource, override, pageSize)
		},
	}

	cmd.Flags().BoolVar(&serverSide, "server-side", false, "page every resource on the records service")
	cmd.Flags().BoolVar(&clientSide, "client-side", false, "fetch every resource whole and page locally")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "initial rows per page (default from table.page_size)")

	return cmd
}

func runBrowse(cmd *cobra.Command, resource string, serverSide *bool, pageSize int) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ErrNotInteractive
	}

	cfg := config.GetGlobalConfig()
	v, err := views.Lookup(resource)
	if err != nil {
		return err
	}
	tcfg, err := cfg.Table.ToTableConfig()
	if err != nil {
		return err
	}
	modes := make(map[string]bool, len(cfg.Views))
	for name, vc := range cfg.Views {
		if vc.Mode != "" {
			modes[name] = vc.Mode == config.ModeServer
		}
	}

	client, err := connect(cmd, cfg)
	if err != nil {
		return err
	}

	b, err := tui.NewBrowser(cmd.Context(), client, tui.BrowserOptions{
		Resource:   v.Name,
		ServerSide: serverSide,
		Modes:      modes,
		PageSize:   pageSize,
		Config:     tcfg,
		Breakpoint: cfg.Table.CompactWidth,
	})
	if err != nil {
		return err
	}
	if err = tui.Run(cmd.Context(), b); err != nil {
		return fmt.Errorf("running console: %w", err)
	}
	return nil
}
