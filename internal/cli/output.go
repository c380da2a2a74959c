package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/rshade/registrar/internal/table"
)

// Output formats accepted by --output.
const (
	formatTable = "table"
	formatCards = "cards"
	formatPlain = "plain"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

//nolint:gochecknoglobals // Fixed list of --output values.
var outputFormats = []string{formatTable, formatCards, formatPlain, formatJSON, formatYAML}

// ErrInvalidOutput is returned for an unknown --output value.
var ErrInvalidOutput = fmt.Errorf("output must be one of: %s", strings.Join(outputFormats, ", "))

// resolveFormat returns the --output value, or fallback when the flag is unset.
func resolveFormat(flag, fallback string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(flag))
	if f == "" {
		f = fallback
	}
	if !slices.Contains(outputFormats, f) {
		return "", fmt.Errorf("%w: got %q", ErrInvalidOutput, flag)
	}
	return f, nil
}

// outputWidth returns the --width value, the terminal width of w, or zero
// (unbounded) when w is not a terminal.
func outputWidth(w io.Writer, flag int) int {
	if flag > 0 {
		return flag
	}
	f, ok := w.(*os.File)
	if !ok || !isTerminal(f) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// renderSnapshot draws v for a text format. The table format switches to
// cards when width is below breakpoint.
func renderSnapshot(v table.View, format string, width, breakpoint int) string {
	switch format {
	case formatPlain:
		return table.RenderPlain(v)
	case formatCards:
		opts := table.DefaultRenderOptions()
		opts.Width = width
		return table.RenderCards(v, opts)
	default:
		opts := table.DefaultRenderOptions()
		opts.Width = width
		return table.Render(v, table.LayoutFor(width, breakpoint), opts)
	}
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML writes node as a YAML document.
func writeYAML(w io.Writer, node *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return err
	}
	return enc.Close()
}

// yamlMapping builds a mapping node from alternating keys and value nodes.
func yamlMapping(pairs ...any) (*yaml.Node, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("yamlMapping: odd number of arguments (%d)", len(pairs))
	}
	m := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("yamlMapping: key %v is not a string", pairs[i])
		}
		v, err := yamlValue(pairs[i+1])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, v)
	}
	return m, nil
}

// yamlValue encodes v, keeping table.Row field order.
func yamlValue(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *yaml.Node:
		return t, nil
	case table.Row:
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range t.Fields() {
			val, err := yamlValue(f.Value)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Key, err)
			}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key}, val)
		}
		return m, nil
	case []table.Row:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, r := range t {
			n, err := yamlValue(r)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range t {
			n, err := yamlValue(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
}
