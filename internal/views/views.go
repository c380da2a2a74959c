// Package views defines the registrar's resource pages: which endpoint each
// resource uses, its columns and cell renderers, the field that titles its
// cards, the field that identifies a record, and whether its pagination is
// server- or client-driven by default.
package views

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rshade/registrar/internal/backend"
	"github.com/rshade/registrar/internal/table"
)

// ErrUnknownResource is returned by Lookup for names not in the registry.
var ErrUnknownResource = errors.New("unknown resource")

// Resource names.
const (
	Students   = "students"
	Courses    = "courses"
	Categories = "categories"
	Grades     = "grades"
)

// View is the definition of one resource page.
type View struct {
	// Name is the resource name and endpoint segment.
	Name  string
	Title string

	Columns []table.Column

	// CardTitleKey titles each card in the narrow layout.
	CardTitleKey string

	// DetailKey names the field whose value identifies a record for Get.
	DetailKey string

	// ServerSide is the default pagination mode.
	ServerSide bool

	// Relations are fetched with a record on the detail page.
	Relations []backend.Relation

	EmptyText string
}

// Mode returns the engine strategy for the view. serverSide overrides the
// default when non-nil; pageSize seeds the client page size.
func (v View) Mode(serverSide *bool, pageSize int) table.Mode {
	server := v.ServerSide
	if serverSide != nil {
		server = *serverSide
	}
	if server {
		return table.ServerDriven{Size: pageSize}
	}
	return table.ClientDriven{PageSize: pageSize}
}

// RecordID returns the detail key value of row.
func (v View) RecordID(row table.Row) string {
	return row.Text(v.DetailKey)
}

// Column returns the column with key, if any.
func (v View) Column(key string) (table.Column, bool) {
	i := slices.IndexFunc(v.Columns, func(c table.Column) bool { return c.Key == key })
	if i < 0 {
		return table.Column{}, false
	}
	return v.Columns[i], true
}

// order is the navigation order of the resource switcher.
//
//nolint:gochecknoglobals // Fixed registry order.
var order = []string{Students, Courses, Categories, Grades}

// Names returns the resource names in navigation order.
func Names() []string {
	return slices.Clone(order)
}

// Lookup returns the view named name.
func Lookup(name string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Students:
		return studentsView(), nil
	case Courses:
		return coursesView(), nil
	case Categories:
		return categoriesView(), nil
	case Grades:
		return gradesView(), nil
	default:
		return View{}, fmt.Errorf("%w %q (valid: %s)", ErrUnknownResource, name, strings.Join(order, ", "))
	}
}

// Next returns the resource step positions away from name, wrapping around.
func Next(name string, step int) string {
	i := slices.Index(order, name)
	if i < 0 {
		return order[0]
	}
	n := len(order)
	return order[((i+step)%n+n)%n]
}
