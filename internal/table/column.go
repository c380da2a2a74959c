package table

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// CellRenderer turns a raw field value into display text. It receives the
// whole row so a cell can be composed from sibling fields.
type CellRenderer interface {
	RenderCell(value any, row Row) string
}

// RenderFunc adapts a plain function to CellRenderer.
type RenderFunc func(value any, row Row) string

// RenderCell calls f.
func (f RenderFunc) RenderCell(value any, row Row) string {
	return f(value, row)
}

// StringRenderer is the default CellRenderer: it coerces the raw value with
// FormatValue.
type StringRenderer struct{}

// RenderCell returns FormatValue(value).
func (StringRenderer) RenderCell(value any, _ Row) string {
	return FormatValue(value)
}

// Column describes how one field is labelled, rendered and laid out.
type Column struct {
	// Key addresses the field in each row. Missing fields render empty.
	Key string

	// Header is the column label.
	Header string

	// Renderer, when set, is the only authority on how cells are displayed.
	Renderer CellRenderer

	// Style is applied to the column's cells in styled layouts.
	Style lipgloss.Style

	// MobileHide drops the column from the card layout.
	MobileHide bool

	// Width is a display width hint in cells. Zero lets the layout decide;
	// longer cell text is truncated with an ellipsis.
	Width int
}

// Cell returns the display text of this column for row.
func (c Column) Cell(row Row) string {
	value := row.Value(c.Key)
	if c.Renderer != nil {
		return c.Renderer.RenderCell(value, row)
	}
	return StringRenderer{}.RenderCell(value, row)
}

// Label returns Header, falling back to Key.
func (c Column) Label() string {
	if c.Header != "" {
		return c.Header
	}
	return c.Key
}

// ResolveColumns returns explicit when it is non-empty. Otherwise it infers
// one column per field of the first row, in that row's field order, using the
// field name as key and header. No rows and no columns yields no columns.
func ResolveColumns(explicit []Column, rows []Row) []Column {
	if len(explicit) > 0 {
		return explicit
	}
	if len(rows) == 0 {
		return []Column{}
	}

	keys := rows[0].Keys()
	cols := make([]Column, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, Column{Key: k, Header: k})
	}
	return cols
}

// MobileColumns drops columns marked MobileHide and keeps at most limit of
// the rest, in order. A non-positive limit keeps them all.
func MobileColumns(cols []Column, limit int) []Column {
	out := make([]Column, 0, min(len(cols), max(limit, 0)))
	for _, c := range cols {
		if c.MobileHide {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, c)
	}
	return out
}

// FormatValue coerces a raw field value to display text. nil becomes the
// empty string.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return formatFloat(val, 64)
	case float32:
		return formatFloat(float64(val), 32)
	case json.Number:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	case Row:
		return formatRow(val)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = FormatValue(item)
		}
		return strings.Join(parts, ", ")
	case fmt.Stringer:
		return val.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return FormatValue(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

func formatRow(r Row) string {
	parts := make([]string, 0, r.Len())
	for _, f := range r.fields {
		parts = append(parts, f.Key+": "+FormatValue(f.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
