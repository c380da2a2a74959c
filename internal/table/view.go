package table

import (
	"golang.org/x/text/language"

	"github.com/rshade/registrar/internal/pager"
)

// ViewState is what a snapshot shows, in priority order.
type ViewState int

const (
	// ViewLoading shows a placeholder skeleton and nothing else.
	ViewLoading ViewState = iota
	// ViewError shows only the caller's error message.
	ViewError
	// ViewEmpty shows the "no data" indicator.
	ViewEmpty
	// ViewRows shows the current page of rows.
	ViewRows
)

// String returns the state name.
func (s ViewState) String() string {
	switch s {
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewEmpty:
		return "empty"
	case ViewRows:
		return "rows"
	default:
		return "unknown"
	}
}

// Placeholder sizes the loading skeleton.
type Placeholder struct {
	Columns int
	Rows    int
}

// VisibleRow is a row on the current page.
type VisibleRow struct {
	Row Row

	// Position is the row's index in the sorted dataset.
	Position int

	// Source is the row's index in the rows the caller supplied.
	Source int
}

// View is an immutable snapshot of what the engine would draw.
type View struct {
	State ViewState

	// Columns is the full resolved column set (table layout).
	Columns []Column

	// MobileColumns is the capped subset used by the card layout.
	MobileColumns []Column

	// MobileColumnLimit is the card line cap, also used to size loading cards.
	MobileColumnLimit int

	// Rows is the current page. Empty unless State is ViewRows.
	Rows []VisibleRow

	Placeholder Placeholder
	Error       string
	EmptyText   string

	// Pagination is nil when no pagination chrome should be drawn.
	Pagination *pager.State
	PageSizes  []int

	Sort       SortState
	ServerSide bool

	// Interactive is true when rows respond to clicks.
	Interactive bool
	Compact     bool

	CardTitleKey      string
	CardTitleFallback string

	GroupDigits bool
	Locale      language.Tag
}

// CardTitle returns the card title for row: the CardTitleKey field when it has
// a value, the fallback label otherwise.
func (v View) CardTitle(row Row) string {
	if v.CardTitleKey != "" {
		if t := row.Text(v.CardTitleKey); t != "" {
			return t
		}
	}
	return v.CardTitleFallback
}

// Controller returns a pager controller for the snapshot's pagination state
// without callbacks, for drawing.
func (v View) Controller() (pager.Controller, bool) {
	if v.Pagination == nil {
		return pager.Controller{}, false
	}
	return pager.Controller{
		State:       *v.Pagination,
		PageSizes:   v.PageSizes,
		GroupDigits: v.GroupDigits,
		Locale:      v.Locale,
	}, true
}
