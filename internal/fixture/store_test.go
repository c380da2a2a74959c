package fixture

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "fixture.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	seeded, err := s.Seed(context.Background())
	require.NoError(t, err)
	require.True(t, seeded)
	return s
}

func TestSeed(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	for resource, want := range map[string]int{
		"categories": 4,
		"courses":    12,
		"students":   SeedStudents,
		"grades":     SeedStudents*3 + SeedStudents/2,
	} {
		n, err := s.Count(ctx, resource)
		require.NoError(t, err)
		assert.Equal(t, want, n, resource)
	}

	seeded, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded, "second seed is a no-op")
}

func TestStore_Count(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	for _, resource := range []string{"categories", "courses", "students", "grades"} {
		n, countErr := s.Count(ctx, resource)
		require.NoError(t, countErr, resource)
		assert.Zero(t, n, resource)
	}

	_, err = s.Count(ctx, "teachers")
	require.ErrorIs(t, err, ErrUnknownResource)
}

func TestSeed_DeterministicIDs(t *testing.T) {
	a := newSeededStore(t)
	b := newSeededStore(t)
	ctx := context.Background()

	ra, err := a.Get(ctx, "students", "S24007")
	require.NoError(t, err)
	rb, err := b.Get(ctx, "students", "S24007")
	require.NoError(t, err)
	assert.Equal(t, ra.Text("id"), rb.Text("id"))
	assert.Equal(t, recordID("students", "S24007"), ra.Text("id"))
}

func TestStore_List(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		resource string
		filter   Filter
		want     int
	}{
		{name: "all categories", resource: "categories", want: 4},
		{name: "query is case-insensitive", resource: "courses", filter: Filter{Query: "CALCULUS"}, want: 1},
		{name: "query matches joined category", resource: "courses", filter: Filter{Query: "humanities"}, want: 3},
		{name: "relation filter", resource: "courses", filter: Filter{Match: map[string]string{"categoryCode": "CS"}}, want: 3},
		{name: "grades by student", resource: "grades", filter: Filter{Match: map[string]string{"studentId": "S24001"}}, want: 3},
		{name: "unknown match keys ignored", resource: "categories", filter: Filter{Match: map[string]string{"nope": "x"}}, want: 4},
		{name: "like wildcards are literal", resource: "categories", filter: Filter{Query: "%"}, want: 0},
		{name: "no match", resource: "students", filter: Filter{Query: "zzzz"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := s.List(ctx, tt.resource, tt.filter)
			require.NoError(t, err)
			assert.Len(t, rows, tt.want)
			assert.NotNil(t, rows)
		})
	}
}

func TestStore_List_UnknownResource(t *testing.T) {
	s := newSeededStore(t)
	_, err := s.List(context.Background(), "teachers", Filter{})
	require.ErrorIs(t, err, ErrUnknownResource)
	assert.Contains(t, err.Error(), "categories, courses, grades, students")
}

func TestStore_FieldOrderAndTypes(t *testing.T) {
	s := newSeededStore(t)
	row, err := s.Get(context.Background(), "students", "S24001")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"id", "studentId", "firstName", "lastName", "email",
		"program", "year", "gpa", "active", "enrolledAt",
	}, row.Keys())
	assert.Equal(t, "Ada", row.Value("firstName"))
	assert.Equal(t, int64(1), row.Value("year"))
	assert.Nil(t, row.Value("gpa"), "first-year without a GPA")
	assert.Equal(t, false, row.Value("active"))

	row, err = s.Get(context.Background(), "students", "S24002")
	require.NoError(t, err)
	assert.IsType(t, float64(0), row.Value("gpa"))
	assert.Equal(t, true, row.Value("active"))
}

func TestStore_Page(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	rows, total, err := s.Page(ctx, "students", Filter{}, 2, 25)
	require.NoError(t, err)
	assert.Equal(t, SeedStudents, total)
	require.Len(t, rows, 10)
	assert.Equal(t, "S24051", rows[0].Text("studentId"))

	rows, total, err = s.Page(ctx, "courses", Filter{Query: "general"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, rows, 2)

	rows, _, err = s.Page(ctx, "students", Filter{}, 9, 25)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStore_Get(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	byKey, err := s.Get(ctx, "courses", "MATH220")
	require.NoError(t, err)
	assert.Equal(t, "Linear Algebra", byKey.Value("title"))
	assert.Equal(t, "Mathematics", byKey.Value("category"))

	byID, err := s.Get(ctx, "courses", byKey.Text("id"))
	require.NoError(t, err)
	assert.Equal(t, "MATH220", byID.Value("code"))

	_, err = s.Get(ctx, "courses", "NOPE999")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(ctx, "grades", "S24001")
	require.ErrorIs(t, err, ErrNotFound, "grades are addressed by id only")
}

func TestLetterFor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "A"}, {90, "A"}, {89, "B"}, {70, "C"}, {60, "D"}, {59, "F"}, {40, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, letterFor(tt.score), tt.score)
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_a\\b`, escapeLike(`100%_a\b`))
}
