package fixture

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/registrar/internal/table"
)

// Errors returned by Store queries.
var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrNotFound        = errors.New("record not found")
)

type kind int

const (
	kindText kind = iota
	kindInt
	kindReal
	kindBool
)

type field struct {
	name string
	expr string
	kind kind
}

// resource maps an API collection onto SQL. Field order is the JSON order.
type resource struct {
	from    string
	fields  []field
	keyExpr string
	search  []string
	filters map[string]string
	order   string
}

var resources = map[string]resource{
	"categories": {
		from: "categories c",
		fields: []field{
			{"id", "c.id", kindText},
			{"code", "c.code", kindText},
			{"name", "c.name", kindText},
			{"description", "c.description", kindText},
		},
		keyExpr: "c.code",
		search:  []string{"c.code", "c.name", "c.description"},
		order:   "c.code",
	},
	"courses": {
		from: "courses o JOIN categories c ON c.code = o.category_code",
		fields: []field{
			{"id", "o.id", kindText},
			{"code", "o.code", kindText},
			{"title", "o.title", kindText},
			{"categoryCode", "o.category_code", kindText},
			{"category", "c.name", kindText},
			{"credits", "o.credits", kindInt},
			{"capacity", "o.capacity", kindInt},
			{"active", "o.active", kindBool},
		},
		keyExpr: "o.code",
		search:  []string{"o.code", "o.title", "c.name"},
		filters: map[string]string{"categoryCode": "o.category_code"},
		order:   "o.code",
	},
	"students": {
		from: "students s",
		fields: []field{
			{"id", "s.id", kindText},
			{"studentId", "s.student_id", kindText},
			{"firstName", "s.first_name", kindText},
			{"lastName", "s.last_name", kindText},
			{"email", "s.email", kindText},
			{"program", "s.program", kindText},
			{"year", "s.year", kindInt},
			{"gpa", "s.gpa", kindReal},
			{"active", "s.active", kindBool},
			{"enrolledAt", "s.enrolled_at", kindText},
		},
		keyExpr: "s.student_id",
		search:  []string{"s.student_id", "s.first_name", "s.last_name", "s.email", "s.program"},
		filters: map[string]string{"program": "s.program"},
		order:   "s.student_id",
	},
	"grades": {
		from: "grades g",
		fields: []field{
			{"id", "g.id", kindText},
			{"studentId", "g.student_id", kindText},
			{"courseCode", "g.course_code", kindText},
			{"term", "g.term", kindText},
			{"score", "g.score", kindInt},
			{"letter", "g.letter", kindText},
			{"passed", "g.passed", kindBool},
		},
		search: []string{"g.student_id", "g.course_code", "g.term", "g.letter"},
		filters: map[string]string{
			"studentId":  "g.student_id",
			"courseCode": "g.course_code",
			"term":       "g.term",
		},
		order: "g.student_id, g.term, g.course_code",
	},
}

// Resources returns the served collection names, sorted.
func Resources() []string {
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FilterFields returns the exact-match filter parameters resource accepts,
// sorted.
func FilterFields(name string) []string {
	def, ok := resources[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(def.filters))
	for k := range def.filters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func lookup(name string) (resource, error) {
	def, ok := resources[name]
	if !ok {
		return resource{}, fmt.Errorf("%w %q (valid: %s)", ErrUnknownResource, name, strings.Join(Resources(), ", "))
	}
	return def, nil
}

// Filter narrows a listing. Query is a case-insensitive substring matched
// against the resource's searchable columns; Match holds exact-match filters
// keyed by API field name. Unknown Match keys are ignored.
type Filter struct {
	Query string
	Match map[string]string
}

func (d resource) selectList() string {
	exprs := make([]string, len(d.fields))
	for i, f := range d.fields {
		exprs[i] = f.expr
	}
	return strings.Join(exprs, ", ")
}

func (d resource) where(f Filter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if q := strings.TrimSpace(f.Query); q != "" && len(d.search) > 0 {
		likes := make([]string, len(d.search))
		for i, expr := range d.search {
			likes[i] = expr + " LIKE ? ESCAPE '\\'"
			args = append(args, "%"+escapeLike(q)+"%")
		}
		clauses = append(clauses, "("+strings.Join(likes, " OR ")+")")
	}

	keys := make([]string, 0, len(f.Match))
	for k := range f.Match {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		expr, ok := d.filters[k]
		if !ok {
			continue
		}
		clauses = append(clauses, expr+" = ?")
		args = append(args, f.Match[k])
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// List returns every record of resource matching f.
func (s *Store) List(ctx context.Context, name string, f Filter) ([]table.Row, error) {
	def, err := lookup(name)
	if err != nil {
		return nil, err
	}
	where, args := def.where(f)
	query := "SELECT " + def.selectList() + " FROM " + def.from + where + " ORDER BY " + def.order
	return s.query(ctx, def, query, args...)
}

// Page returns the 0-based page of resource matching f and the total number
// of matching records.
func (s *Store) Page(ctx context.Context, name string, f Filter, page, size int) ([]table.Row, int, error) {
	def, err := lookup(name)
	if err != nil {
		return nil, 0, err
	}
	where, args := def.where(f)

	var total int
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+def.from+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting %s: %w", name, err)
	}

	query := "SELECT " + def.selectList() + " FROM " + def.from + where +
		" ORDER BY " + def.order + " LIMIT ? OFFSET ?"
	rows, err := s.query(ctx, def, query, append(args, size, page*size)...)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Get returns one record by its id or, where the resource has one, its key
// column (studentId, course code, category code).
func (s *Store) Get(ctx context.Context, name, id string) (table.Row, error) {
	def, err := lookup(name)
	if err != nil {
		return table.Row{}, err
	}

	idExpr := def.fields[0].expr
	where := " WHERE " + idExpr + " = ?"
	args := []any{id}
	if def.keyExpr != "" {
		where += " OR " + def.keyExpr + " = ?"
		args = append(args, id)
	}

	rows, err := s.query(ctx, def, "SELECT "+def.selectList()+" FROM "+def.from+where+" LIMIT 1", args...)
	if err != nil {
		return table.Row{}, err
	}
	if len(rows) == 0 {
		return table.Row{}, fmt.Errorf("%w: %s/%s", ErrNotFound, name, id)
	}
	return rows[0], nil
}

func (s *Store) query(ctx context.Context, def resource, query string, args ...any) ([]table.Row, error) {
	rs, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rs.Close()

	out := []table.Row{}
	for rs.Next() {
		raw := make([]any, len(def.fields))
		ptrs := make([]any, len(raw))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err = rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		fields := make([]table.Field, len(def.fields))
		for i, f := range def.fields {
			fields[i] = table.Field{Key: f.name, Value: convert(raw[i], f.kind)}
		}
		out = append(out, table.NewRow(fields...))
	}
	if err = rs.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return out, nil
}

func convert(v any, k kind) any {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if v == nil {
		return nil
	}
	switch k {
	case kindBool:
		switch n := v.(type) {
		case int64:
			return n != 0
		case bool:
			return n
		}
	case kindInt:
		if f, ok := v.(float64); ok {
			return int64(f)
		}
	case kindReal:
		if n, ok := v.(int64); ok {
			return float64(n)
		}
	case kindText:
	}
	return v
}
