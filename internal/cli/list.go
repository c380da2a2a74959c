package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/registrar/internal/backend"
	"github.com/rshade/registrar/internal/cli/pagination"
	"github.com/rshade/registrar/internal/config"
	"github.com/rshade/registrar/internal/logging"
	"github.com/rshade/registrar/internal/table"
	"github.com/rshade/registrar/internal/views"
)

// ErrConflictingMode is returned when both --server-side and --client-side are set.
var ErrConflictingMode = errors.New("--server-side and --client-side are mutually exclusive")

type listParams struct {
	page       pagination.Params
	serverSide bool
	clientSide bool
	filter     string
	output     string
	width      int
}

// listResult is the structured (json/yaml) form of one listed page.
type listResult struct {
	Resource   string          `json:"resource"`
	Filter     string          `json:"filter,omitempty"`
	Sort       string          `json:"sort,omitempty"`
	Rows       []table.Row     `json:"rows"`
	Pagination pagination.Meta `json:"pagination"`
}

// NewListCmd creates the list command, which prints one page of a resource.
func NewListCmd() *cobra.Command {
	var params listParams

	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "List one page of a resource",
		Long: `Lists one page of students, courses, categories or grades.

Students and grades are paged by the records service (server-side); courses
and categories are fetched whole and paged, sorted and filtered locally
(client-side). --server-side and --client-side override the default, as does
views.<resource>.mode in the configuration.

Sorting is only available client-side.`,
		Example: `  # First page of students
  registrar list students

  # Third page of grades, 50 per page
  registrar list grades --page 3 --page-size 50

  # Courses sorted by credits, highest first
  registrar list courses --sort credits:desc

  # Students matching "lovelace", as JSON
  registrar list students --filter lovelace --output json

  # Force client-side paging so students can be sorted
  registrar list students --client-side --sort gpa:desc`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: views.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0], params)
		},
	}

	cmd.Flags().IntVar(&params.page.Page, "page", pagination.DefaultPage, "page number (1-based)")
	cmd.Flags().IntVar(&params.page.PageSize, "page-size", 0, "rows per page (default from table.page_size)")
	cmd.Flags().StringVar(&params.page.Sort, "sort", "", "sort by field[:asc|desc] (client-side only)")
	cmd.Flags().StringVar(&params.filter, "filter", "", "only rows matching this text")
	cmd.Flags().BoolVar(&params.serverSide, "server-side", false, "page on the records service")
	cmd.Flags().BoolVar(&params.clientSide, "client-side", false, "fetch everything and page locally")
	cmd.Flags().StringVarP(&params.output, "output", "o", "",
		"output format: "+strings.Join(outputFormats, ", ")+" (default from output.default_format)")
	cmd.Flags().IntVar(&params.width, "width", 0, "render width in columns (default: terminal width)")

	return cmd
}

// serverSideOverride resolves the pagination mode override from the flags
// and the per-view configuration. Nil keeps the view's default.
func serverSideOverride(params listParams, vc config.ViewConfig) (*bool, error) {
	switch {
	case params.serverSide && params.clientSide:
		return nil, ErrConflictingMode
	case params.serverSide:
		return ptr(true), nil
	case params.clientSide:
		return ptr(false), nil
	case vc.Mode == config.ModeServer:
		return ptr(true), nil
	case vc.Mode == config.ModeClient:
		return ptr(false), nil
	default:
		return nil, nil //nolint:nilnil // nil means no override
	}
}

func ptr[T any](v T) *T {
	return &v
}

func runList(cmd *cobra.Command, resource string, params listParams) error {
	cfg := config.GetGlobalConfig()
	log := logging.FromContext(cmd.Context())

	v, err := views.Lookup(resource)
	if err != nil {
		return err
	}
	format, err := resolveFormat(params.output, cfg.Output.DefaultFormat)
	if err != nil {
		return err
	}

	override, err := serverSideOverride(params, cfg.ViewFor(v.Name))
	if err != nil {
		return err
	}
	serverSide := v.ServerSide
	if override != nil {
		serverSide = *override
	}

	page := params.page
	page.ServerSide = serverSide
	if err = page.Validate(); err != nil {
		return err
	}
	sortState, err := page.SortState()
	if err != nil {
		return err
	}
	if err = pagination.ValidateSortField(sortState, v.Columns); err != nil {
		return err
	}

	tcfg, err := cfg.Table.ToTableConfig()
	if err != nil {
		return err
	}
	size := page.EffectivePageSize(tcfg.DefaultPageSize)
	if vc := cfg.ViewFor(v.Name); vc.PageSize > 0 && page.PageSize == 0 {
		size = vc.PageSize
	}

	client, err := connect(cmd, cfg)
	if err != nil {
		return err
	}

	e := table.New(tcfg, v.Mode(&serverSide, size))
	props := table.Props{Columns: v.Columns, EmptyText: v.EmptyText, CardTitleKey: v.CardTitleKey}
	ctx := cmd.Context()

	if serverSide {
		res, pageErr := client.Page(ctx, v.Name, backend.PageRequest{
			Page:  page.PageIndex(),
			Size:  size,
			Query: params.filter,
		})
		if pageErr != nil {
			return fmt.Errorf("fetching %s page %d: %w", v.Name, page.Page, pageErr)
		}
		props.Rows = res.Rows
		e.SetServerPage(res.ServerDriven())
		e.SetProps(props)
	} else {
		rows, listErr := client.List(ctx, v.Name, "")
		if listErr != nil {
			return fmt.Errorf("fetching %s: %w", v.Name, listErr)
		}
		props.Rows = views.Filter(rows, v.Columns, params.filter)
		e.SetProps(props)
		e.SortBy(sortState)
		e.ChangePage(page.PageIndex())
	}

	snap := e.View()
	log.Debug().
		Str("resource", v.Name).
		Bool("server_side", serverSide).
		Str("state", snap.State.String()).
		Int("rows", len(snap.Rows)).
		Msg("listed page")

	out := cmd.OutOrStdout()
	switch format {
	case formatJSON, formatYAML:
		res := listResult{
			Resource:   v.Name,
			Filter:     params.filter,
			Sort:       page.Sort,
			Rows:       pageRows(snap),
			Pagination: pagination.NewMeta(e.Controller().State, serverSide),
		}
		if format == formatJSON {
			return writeJSON(out, res)
		}
		node, nodeErr := yamlMapping(
			"resource", res.Resource,
			"filter", res.Filter,
			"sort", res.Sort,
			"rows", res.Rows,
			"pagination", res.Pagination,
		)
		if nodeErr != nil {
			return nodeErr
		}
		return writeYAML(out, node)
	default:
		width := outputWidth(out, params.width)
		_, err = fmt.Fprintln(out, renderSnapshot(snap, format, width, cfg.Table.CompactWidth))
		return err
	}
}

// pageRows returns the rows on the snapshot's page.
func pageRows(v table.View) []table.Row {
	rows := make([]table.Row, len(v.Rows))
	for i, vr := range v.Rows {
		rows[i] = vr.Row
	}
	return rows
}
