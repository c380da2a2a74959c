package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func gpaRows() []Row {
	return []Row{
		NewRow(Field{"name", "Ada"}, Field{"gpa", 3.9}),
		NewRow(Field{"name", "Grace"}, Field{"gpa", nil}),
		NewRow(Field{"name", "Linus"}, Field{"gpa", int64(2)}),
		NewRow(Field{"name", "ken"}, Field{"gpa", 3.2}),
		NewRow(Field{"name", "Barbara"}),
	}
}

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Text("name")
	}
	return out
}

func TestSortState_Toggle(t *testing.T) {
	var s SortState
	assert.False(t, s.Active())

	s = s.Toggle("gpa")
	assert.Equal(t, SortState{Key: "gpa", Direction: SortAsc}, s)
	s = s.Toggle("gpa")
	assert.Equal(t, SortState{Key: "gpa", Direction: SortDesc}, s)
	s = s.Toggle("gpa")
	assert.Equal(t, SortState{Key: "gpa", Direction: SortAsc}, s)

	s = s.Toggle("gpa").Toggle("name")
	assert.Equal(t, SortState{Key: "name", Direction: SortAsc}, s)
}

func TestParseSortDirection(t *testing.T) {
	d, err := ParseSortDirection(" DESC ")
	require.NoError(t, err)
	assert.Equal(t, SortDesc, d)

	_, err = ParseSortDirection("sideways")
	assert.Error(t, err)
}

func TestComparator_Compare(t *testing.T) {
	c := NewComparator(language.English)

	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"nil after number", nil, 1, 1},
		{"number before nil", 1, nil, -1},
		{"nil after string", nil, "a", 1},
		{"both nil", nil, nil, 0},
		{"numeric not lexical", int64(10), int64(9), 1},
		{"mixed numeric kinds", 2, 2.5, -1},
		{"float equality", 1.0, int64(1), 0},
		{"case-insensitive collation first", "apple", "Banana", -1},
		{"number vs string uses text", 10, "9", -1},
		{"bools as text", false, true, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Compare(tt.a, tt.b)
			switch {
			case tt.want < 0:
				assert.Negative(t, got)
			case tt.want > 0:
				assert.Positive(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}

func TestSortRows(t *testing.T) {
	c := NewComparator(language.English)
	rows := gpaRows()
	original := names(rows)

	asc := SortRows(rows, SortState{Key: "gpa", Direction: SortAsc}, c)
	assert.Equal(t, []string{"Linus", "ken", "Ada"}, names(asc)[:3])
	assert.ElementsMatch(t, []string{"Grace", "Barbara"}, names(asc)[3:])

	desc := SortRows(rows, SortState{Key: "gpa", Direction: SortDesc}, c)
	assert.ElementsMatch(t, []string{"Grace", "Barbara"}, names(desc)[:2])
	assert.Equal(t, []string{"Ada", "ken", "Linus"}, names(desc)[2:])

	byName := SortRows(rows, SortState{Key: "name", Direction: SortAsc}, c)
	assert.Equal(t, []string{"Ada", "Barbara", "Grace", "ken", "Linus"}, names(byName))

	assert.Equal(t, original, names(rows), "input order must not change")
}

func TestSortOrder_Inactive(t *testing.T) {
	c := NewComparator(language.English)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, SortOrder(gpaRows(), SortState{}, c))
	assert.Empty(t, SortOrder(nil, SortState{Key: "gpa"}, c))
}

func TestSortRows_Monotonic(t *testing.T) {
	c := NewComparator(language.English)
	rows := make([]Row, 0, 40)
	for i := range 40 {
		var v any = int64((i * 37) % 23)
		if i%9 == 0 {
			v = nil
		}
		rows = append(rows, NewRow(Field{"n", v}))
	}

	asc := SortRows(rows, SortState{Key: "n", Direction: SortAsc}, c)
	seenNil := false
	for i := 1; i < len(asc); i++ {
		prev, cur := asc[i-1].Value("n"), asc[i].Value("n")
		if prev == nil {
			seenNil = true
		}
		if seenNil {
			assert.Nil(t, cur, "nothing may follow a nil in ascending order")
			continue
		}
		if cur != nil {
			assert.LessOrEqual(t, prev.(int64), cur.(int64))
		}
	}

	desc := SortRows(rows, SortState{Key: "n", Direction: SortDesc}, c)
	seenValue := false
	for i := 1; i < len(desc); i++ {
		prev, cur := desc[i-1].Value("n"), desc[i].Value("n")
		if prev != nil {
			seenValue = true
		}
		if seenValue {
			require.NotNil(t, cur, "no nil may follow a value in descending order")
			assert.GreaterOrEqual(t, prev.(int64), cur.(int64))
		}
	}
}
