package pagination

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rshade/registrar/internal/table"
)

// SortFields returns the keys of cols that --sort accepts, sorted.
func SortFields(cols []table.Column) []string {
	fields := make([]string, 0, len(cols))
	for _, c := range cols {
		fields = append(fields, c.Key)
	}
	slices.Sort(fields)
	return slices.Compact(fields)
}

// ValidateSortField checks that s names one of cols. An inactive sort is
// always valid, as is any key when no columns are known yet.
func ValidateSortField(s table.SortState, cols []table.Column) error {
	if !s.Active() || len(cols) == 0 {
		return nil
	}
	fields := SortFields(cols)
	if _, found := slices.BinarySearch(fields, s.Key); found {
		return nil
	}
	return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, s.Key, strings.Join(fields, ", "))
}
