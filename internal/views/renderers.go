package views

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/registrar/internal/table"
)

// Missing is shown for absent numeric and date values.
const Missing = "—"

//nolint:gochecknoglobals // Shared read-only styles.
var (
	numericStyle = lipgloss.NewStyle().Align(lipgloss.Right)
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// FullName renders "Last, First" from two sibling fields. Either part may be
// missing.
func FullName(firstKey, lastKey string) table.CellRenderer {
	return table.RenderFunc(func(_ any, row table.Row) string {
		first, last := row.Text(firstKey), row.Text(lastKey)
		switch {
		case first == "":
			return last
		case last == "":
			return first
		default:
			return last + ", " + first
		}
	})
}

// Decimal renders numbers with a fixed number of decimals.
func Decimal(places int) table.CellRenderer {
	return table.RenderFunc(func(v any, _ table.Row) string {
		f, ok := number(v)
		if !ok {
			if v == nil {
				return Missing
			}
			return table.FormatValue(v)
		}
		return strconv.FormatFloat(f, 'f', places, 64)
	})
}

// Check renders booleans as ✓ and ✗.
func Check() table.CellRenderer {
	return table.RenderFunc(func(v any, _ table.Row) string {
		b, ok := v.(bool)
		switch {
		case !ok:
			return table.FormatValue(v)
		case b:
			return "✓"
		default:
			return "✗"
		}
	})
}

// Date renders RFC3339 timestamps and dates as YYYY-MM-DD.
func Date() table.CellRenderer {
	return table.RenderFunc(func(v any, _ table.Row) string {
		s, ok := v.(string)
		if !ok || s == "" {
			if v == nil {
				return Missing
			}
			return table.FormatValue(v)
		}
		for _, layout := range []string{time.RFC3339, time.DateOnly} {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(time.DateOnly)
			}
		}
		return s
	})
}

// Score renders a numeric score styled by the boolean sibling field passKey.
// Rows without that field are left unstyled.
func Score(passKey string) table.CellRenderer {
	return table.RenderFunc(func(v any, row table.Row) string {
		text := table.FormatValue(v)
		if v == nil {
			text = Missing
		}
		passed, ok := row.Value(passKey).(bool)
		if !ok {
			return text
		}
		if passed {
			return passStyle.Render(text)
		}
		return failStyle.Render(text + " ✗")
	})
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
