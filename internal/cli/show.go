package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/registrar/internal/config"
	"github.com/rshade/registrar/internal/table"
	"github.com/rshade/registrar/internal/tui/detail"
	"github.com/rshade/registrar/internal/views"
)

// showResult is the structured (json/yaml) form of a record.
type showResult struct {
	Resource string                 `json:"resource"`
	ID       string                 `json:"id"`
	Record   table.Row              `json:"record"`
	Related  map[string][]table.Row `json:"related,omitempty"`
}

// NewShowCmd creates the show command, which prints one record with its
// related collections.
func NewShowCmd() *cobra.Command {
	var (
		output string
		width  int
	)

	cmd := &cobra.Command{
		Use:   "show <resource> <id>",
		Short: "Show one record and its related records",
		Long: `Shows one record looked up by its identifying field (student ID, course
code, category code, or grade id), followed by its related collections:
a student's grades, a course's grades, or a category's courses.`,
		Example: `  # A student and their grades
  registrar show students S24001

  # A category and its courses, as YAML
  registrar show categories CS --output yaml`,
		Args: cobra.ExactArgs(2), //nolint:mnd // resource and id
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], args[1], output, width)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "",
		"output format: "+strings.Join(outputFormats, ", ")+" (default from output.default_format)")
	cmd.Flags().IntVar(&width, "width", 0, "render width in columns (default: terminal width)")

	return cmd
}

func runShow(cmd *cobra.Command, resource, id, output string, width int) error {
	cfg := config.GetGlobalConfig()

	v, err := views.Lookup(resource)
	if err != nil {
		return err
	}
	format, err := resolveFormat(output, cfg.Output.DefaultFormat)
	if err != nil {
		return err
	}
	tcfg, err := cfg.Table.ToTableConfig()
	if err != nil {
		return err
	}

	client, err := connect(cmd, cfg)
	if err != nil {
		return err
	}
	res, err := client.Detail(cmd.Context(), v.Name, id, v.Relations...)
	if err != nil {
		return fmt.Errorf("fetching %s %q: %w", v.Name, id, err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		return writeJSON(out, showResult{Resource: v.Name, ID: id, Record: res.Record, Related: res.Related})
	case formatYAML:
		related := make([]any, 0, len(v.Relations)*2) //nolint:mnd // key and value per relation
		for _, rel := range v.Relations {
			related = append(related, rel.Name, res.Related[rel.Name])
		}
		relatedNode, nodeErr := yamlMapping(related...)
		if nodeErr != nil {
			return nodeErr
		}
		node, nodeErr := yamlMapping("resource", v.Name, "id", id, "record", res.Record, "related", relatedNode)
		if nodeErr != nil {
			return nodeErr
		}
		return writeYAML(out, node)
	default:
		opts := detail.LineOptions{
			Width:  outputWidth(out, width),
			Plain:  format == formatPlain,
			Styles: detail.DefaultStyles(),
		}
		title := opts.Styles.Title.Render(fmt.Sprintf("%s › %s", v.Title, id))
		_, err = fmt.Fprintf(out, "%s\n\n%s\n", title, strings.Join(detail.Lines(v, res, tcfg, opts), "\n"))
		return err
	}
}
