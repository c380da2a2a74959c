package views

import (
	"github.com/rshade/registrar/internal/backend"
	"github.com/rshade/registrar/internal/table"
)

func studentsView() View {
	return View{
		Name:  Students,
		Title: "Students",
		Columns: []table.Column{
			{Key: "studentId", Header: "ID"},
			{Key: "lastName", Header: "Name", Renderer: FullName("firstName", "lastName")},
			{Key: "program", Header: "Program"},
			{Key: "year", Header: "Year"},
			{Key: "gpa", Header: "GPA", Renderer: Decimal(2), Style: numericStyle},
			{Key: "email", Header: "Email", MobileHide: true, Width: 28},
			{Key: "active", Header: "Active", Renderer: Check(), MobileHide: true},
			{Key: "enrolledAt", Header: "Enrolled", Renderer: Date(), MobileHide: true},
		},
		CardTitleKey: "studentId",
		DetailKey:    "studentId",
		ServerSide:   true,
		Relations: []backend.Relation{
			{Name: Grades, Resource: Grades, Field: "studentId"},
		},
		EmptyText: "No students match",
	}
}

func coursesView() View {
	return View{
		Name:  Courses,
		Title: "Courses",
		Columns: []table.Column{
			{Key: "code", Header: "Code"},
			{Key: "title", Header: "Title", Width: 32},
			{Key: "category", Header: "Category"},
			{Key: "credits", Header: "Credits", Style: numericStyle},
			{Key: "capacity", Header: "Capacity", Style: numericStyle, MobileHide: true},
			{Key: "active", Header: "Active", Renderer: Check()},
		},
		CardTitleKey: "title",
		DetailKey:    "code",
		Relations: []backend.Relation{
			{Name: Grades, Resource: Grades, Field: "courseCode"},
		},
		EmptyText: "No courses",
	}
}

func categoriesView() View {
	return View{
		Name:  Categories,
		Title: "Categories",
		Columns: []table.Column{
			{Key: "code", Header: "Code"},
			{Key: "name", Header: "Name"},
			{Key: "description", Header: "Description", Width: 40, MobileHide: true},
		},
		CardTitleKey: "name",
		DetailKey:    "code",
		Relations: []backend.Relation{
			{Name: Courses, Resource: Courses, Field: "categoryCode"},
		},
		EmptyText: "No categories",
	}
}

func gradesView() View {
	return View{
		Name:  Grades,
		Title: "Grades",
		Columns: []table.Column{
			{Key: "studentId", Header: "Student"},
			{Key: "courseCode", Header: "Course"},
			{Key: "term", Header: "Term"},
			{Key: "score", Header: "Score", Renderer: Score("passed"), Style: numericStyle},
			{Key: "letter", Header: "Letter"},
		},
		CardTitleKey: "courseCode",
		DetailKey:    "id",
		ServerSide:   true,
		EmptyText:    "No grades recorded",
	}
}
