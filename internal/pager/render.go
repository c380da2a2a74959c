package pager

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles controls how a Controller is drawn.
type Styles struct {
	Button       lipgloss.Style
	Disabled     lipgloss.Style
	Summary      lipgloss.Style
	Size         lipgloss.Style
	SelectedSize lipgloss.Style
}

// DefaultStyles returns the console's pager styles.
func DefaultStyles() Styles {
	return Styles{
		Button:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Disabled:     lipgloss.NewStyle().Faint(true),
		Summary:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Size:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		SelectedSize: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
	}
}

// View draws the controller on one line:
//
//	‹ Prev   Page 1 of 2 — 47 records   Next ›   Rows: 10 [25] 50 100
func (c Controller) View(st Styles) string {
	prev := st.Disabled.Render("‹ Prev")
	if c.CanPrev() {
		prev = st.Button.Render("‹ Prev")
	}
	next := st.Disabled.Render("Next ›")
	if c.CanNext() {
		next = st.Button.Render("Next ›")
	}

	sizes := make([]string, 0, len(c.Sizes()))
	for _, s := range c.Sizes() {
		if s == c.PageSize {
			sizes = append(sizes, st.SelectedSize.Render("["+strconv.Itoa(s)+"]"))
			continue
		}
		sizes = append(sizes, st.Size.Render(strconv.Itoa(s)))
	}

	return strings.Join([]string{
		prev,
		st.Summary.Render(c.Summary()),
		next,
		st.Size.Render("Rows:") + " " + strings.Join(sizes, " "),
	}, "   ")
}
