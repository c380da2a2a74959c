package fixture

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Seed sizes.
const (
	SeedStudents        = 60
	seedCoursesPerGroup = 3
	passingScore        = 60
)

// namespace roots the deterministic record ids, so a reseeded database keeps
// the same ids.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://registrar.example.edu/fixture"))

type seedCategory struct {
	code, name, description string
	courses                 [seedCoursesPerGroup]seedCourse
}

type seedCourse struct {
	code, title       string
	credits, capacity int
}

var seedCatalog = []seedCategory{
	{"CS", "Computer Science", "Programming, systems and theory of computation", [3]seedCourse{
		{"CS101", "Introduction to Programming", 4, 120},
		{"CS210", "Data Structures and Algorithms", 4, 90},
		{"CS340", "Operating Systems", 3, 60},
	}},
	{"MATH", "Mathematics", "Pure and applied mathematics", [3]seedCourse{
		{"MATH101", "Calculus I", 4, 150},
		{"MATH220", "Linear Algebra", 3, 80},
		{"MATH310", "Probability and Statistics", 3, 70},
	}},
	{"HUM", "Humanities", "History, philosophy and literature", [3]seedCourse{
		{"HUM105", "World History", 3, 100},
		{"HUM230", "Ethics", 3, 60},
		{"HUM315", "Comparative Literature Seminar for Upper-Division Students", 2, 25},
	}},
	{"SCI", "Natural Sciences", "Physics, chemistry and biology", [3]seedCourse{
		{"SCI110", "General Physics", 4, 110},
		{"SCI120", "General Chemistry", 4, 110},
		{"SCI250", "Cell Biology", 3, 50},
	}},
}

var (
	seedFirstNames = []string{
		"Ada", "Bruno", "Chioma", "Dmitri", "Elena", "Farid",
		"Grace", "Hiro", "Ines", "Jonas", "Kalani", "Lucía",
	}
	seedLastNames = []string{
		"Okafor", "Lindqvist", "Nakamura", "Moreau", "Petrov",
		"Haddad", "Santos", "Kowalski", "Nguyen", "Abernathy-Whitfield",
	}
	seedPrograms = []string{"Computer Science", "Mathematics", "History", "Physics", "Biology"}
	seedTerms    = []string{"2024-FA", "2025-SP", "2025-FA"}
)

// Seed fills an empty store with deterministic academic records. A store that
// already holds categories is left untouched and Seed reports false.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	n, err := s.Count(ctx, "categories")
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err = seedCourses(ctx, tx); err != nil {
		return false, err
	}
	if err = seedStudents(ctx, tx); err != nil {
		return false, err
	}
	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed: %w", err)
	}
	return true, nil
}

func recordID(resource, key string) string {
	return uuid.NewSHA1(namespace, []byte(resource+"/"+key)).String()
}

func seedCourses(ctx context.Context, tx *sql.Tx) error {
	for _, cat := range seedCatalog {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO categories (id, code, name, description) VALUES (?, ?, ?, ?)",
			recordID("categories", cat.code), cat.code, cat.name, cat.description,
		); err != nil {
			return fmt.Errorf("seeding category %s: %w", cat.code, err)
		}
		for i, c := range cat.courses {
			// The last course of the last category is retired.
			active := !(cat.code == "SCI" && i == len(cat.courses)-1)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO courses (id, code, title, category_code, credits, capacity, active)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				recordID("courses", c.code), c.code, c.title, cat.code, c.credits, c.capacity, active,
			); err != nil {
				return fmt.Errorf("seeding course %s: %w", c.code, err)
			}
		}
	}
	return nil
}

func seedStudents(ctx context.Context, tx *sql.Tx) error {
	courses := allSeedCourses()
	base := time.Date(2021, time.August, 23, 0, 0, 0, 0, time.UTC)

	for i := range SeedStudents {
		sid := fmt.Sprintf("S%05d", 24001+i)
		first := seedFirstNames[i%len(seedFirstNames)]
		last := seedLastNames[(i/len(seedFirstNames)+i)%len(seedLastNames)]
		year := i%4 + 1

		// First-years in their first term have no GPA yet.
		var gpa any
		if !(year == 1 && i%3 == 0) {
			gpa = 2.0 + float64((i*37)%200)/100
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO students (id, student_id, first_name, last_name, email, program, year, gpa, active, enrolled_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			recordID("students", sid), sid, first, last,
			emailFor(first, last, i),
			seedPrograms[i%len(seedPrograms)], year, gpa, i%9 != 0,
			base.AddDate(-(year - 1), 0, i%14).Format(time.DateOnly),
		); err != nil {
			return fmt.Errorf("seeding student %s: %w", sid, err)
		}

		if err := seedGrades(ctx, tx, i, sid, courses); err != nil {
			return err
		}
	}
	return nil
}

func seedGrades(ctx context.Context, tx *sql.Tx, i int, sid string, courses []string) error {
	taken := 3 + i%2
	for k := range taken {
		code := courses[(i+k*5)%len(courses)]
		term := seedTerms[(i+k)%len(seedTerms)]

		var (
			score  any
			letter string
			passed bool
		)
		// The current term of every eleventh student is still in progress.
		if !(i%11 == 0 && k == 0) {
			n := 40 + (i*37+k*13)%61
			score, letter, passed = n, letterFor(n), n >= passingScore
		}

		key := sid + "/" + code + "/" + term
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO grades (id, student_id, course_code, term, score, letter, passed)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			recordID("grades", key), sid, code, term, score, letter, passed,
		); err != nil {
			return fmt.Errorf("seeding grade %s: %w", key, err)
		}
	}
	return nil
}

func allSeedCourses() []string {
	var out []string
	for _, cat := range seedCatalog {
		for _, c := range cat.courses {
			out = append(out, c.code)
		}
	}
	return out
}

func emailFor(first, last string, i int) string {
	local := strings.ToLower(first + "." + strings.ReplaceAll(last, "-", ""))
	return fmt.Sprintf("%s%d@students.example.edu", local, i)
}

func letterFor(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= passingScore:
		return "D"
	default:
		return "F"
	}
}
