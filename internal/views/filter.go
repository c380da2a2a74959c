package views

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/rshade/registrar/internal/table"
)

// Filter returns the rows whose displayed value in any of cols contains query,
// case-insensitively. An empty query returns rows unchanged.
func Filter(rows []table.Row, cols []table.Column, query string) []table.Row {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return rows
	}
	cols = table.ResolveColumns(cols, rows)

	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		for _, c := range cols {
			if strings.Contains(strings.ToLower(ansi.Strip(c.Cell(r))), query) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
