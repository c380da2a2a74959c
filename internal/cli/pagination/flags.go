package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/registrar/internal/table"
)

// Validation limits and defaults.
const (
	DefaultPage     = 1
	MinPage         = 1
	MinPageSize     = 1
	MaxPageSize     = 100
	DefaultSortKey  = ""
	DefaultSortDir  = table.SortAsc
	sortPartsMax    = 2
	sortPartsSingle = 1
)

// Common validation errors.
var (
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidPageSize   = fmt.Errorf("page-size must be between %d and %d", MinPageSize, MaxPageSize)
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'lastName:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField  = errors.New("invalid sort field")
	ErrSortServerSide    = errors.New("--sort is not available with server-side pagination")
)

// Params holds the list command's pagination flags.
type Params struct {
	// Page is the 1-based page number. Zero means the first page.
	Page int

	// PageSize is the number of rows per page. Zero means the configured default.
	PageSize int

	// Sort is the raw --sort value, "field" or "field:order".
	Sort string

	// ServerSide selects server-driven pagination.
	ServerSide bool
}

// NewParams creates Params with the first page and the given page size.
func NewParams(pageSize int) *Params {
	return &Params{Page: DefaultPage, PageSize: pageSize}
}

// Validate checks bounds and flag combinations.
func (p Params) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < 0 || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	if p.ServerSide && strings.TrimSpace(p.Sort) != "" {
		return ErrSortServerSide
	}
	if _, err := ParseSort(p.Sort); err != nil {
		return err
	}
	return nil
}

// PageIndex returns the 0-based page index.
func (p Params) PageIndex() int {
	return max(p.Page-MinPage, 0)
}

// EffectivePageSize returns PageSize, or fallback when it is unset.
func (p Params) EffectivePageSize(fallback int) int {
	if p.PageSize > 0 {
		return p.PageSize
	}
	return fallback
}

// SortState parses the --sort flag into an engine sort state.
func (p Params) SortState() (table.SortState, error) {
	return ParseSort(p.Sort)
}

// ParseSort parses "field" or "field:order". An empty string is the inactive
// sort. Order defaults to ascending and is case-insensitive.
func ParseSort(sortStr string) (table.SortState, error) {
	if strings.TrimSpace(sortStr) == "" {
		return table.SortState{Key: DefaultSortKey, Direction: DefaultSortDir}, nil
	}

	var field, order string
	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case sortPartsSingle:
		field = strings.TrimSpace(parts[0])
		order = string(DefaultSortDir)
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return table.SortState{}, fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return table.SortState{}, ErrEmptySortField
	}

	dir, err := table.ParseSortDirection(order)
	if err != nil {
		return table.SortState{}, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return table.SortState{Key: field, Direction: dir}, nil
}
