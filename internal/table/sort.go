package table

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortDirection is the order of a client-side sort.
type SortDirection string

// Sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection accepts "asc" or "desc" in any case.
func ParseSortDirection(s string) (SortDirection, error) {
	switch SortDirection(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	default:
		return "", fmt.Errorf("invalid sort direction %q (must be asc or desc)", s)
	}
}

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// SortState is the active client-side sort. An empty Key means unsorted.
type SortState struct {
	Key       string
	Direction SortDirection
}

// Active reports whether a sort key is set.
func (s SortState) Active() bool {
	return s.Key != ""
}

// Toggle applies a header click on key: the active key flips direction, any
// other key becomes active ascending.
func (s SortState) Toggle(key string) SortState {
	if key != "" && key == s.Key {
		return SortState{Key: key, Direction: s.Direction.Flip()}
	}
	return SortState{Key: key, Direction: SortAsc}
}

// Comparator orders field values: nil after everything else, numbers
// numerically, anything else by the locale's collation of its display text.
// A Comparator is not safe for concurrent use.
type Comparator struct {
	coll *collate.Collator
}

// NewComparator returns a Comparator collating strings for tag.
func NewComparator(tag language.Tag) *Comparator {
	return &Comparator{coll: collate.New(tag)}
}

// Compare returns a negative number when a sorts before b in ascending order,
// a positive number when after, and zero when they are equivalent.
func (c *Comparator) Compare(a, b any) int {
	aNil, bNil := isNil(a), isNil(b)
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return 1
	case bNil:
		return -1
	}

	if ai, ok := toInt(a); ok {
		if bi, ok := toInt(b); ok {
			return cmp.Compare(ai, bi)
		}
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return cmp.Compare(af, bf)
		}
	}
	return c.coll.CompareString(FormatValue(a), FormatValue(b))
}

// SortOrder returns the positions of rows ordered by s. The rows themselves
// are never reordered. An inactive sort yields the identity order.
func SortOrder(rows []Row, s SortState, c *Comparator) []int {
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	if !s.Active() || len(rows) < 2 {
		return order
	}

	sort.SliceStable(order, func(i, j int) bool {
		res := c.Compare(rows[order[i]].Value(s.Key), rows[order[j]].Value(s.Key))
		if s.Direction == SortDesc {
			return res > 0
		}
		return res < 0
	})
	return order
}

// SortRows returns a sorted copy of rows.
func SortRows(rows []Row, s SortState, c *Comparator) []Row {
	order := SortOrder(rows, s, c)
	out := make([]Row, len(order))
	for i, idx := range order {
		out[i] = rows[idx]
	}
	return out
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int, int8, int16, int32, int64:
		i, _ := toInt(n)
		return float64(i), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
