package listview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders an item. selected reports whether it is under the cursor.
type RenderFunc[T any] func(item T, selected bool) string

// KeyMap holds the scrolling bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
}

// DefaultKeyMap returns arrow, vim and paging bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	}
}

// Model is a cursor over items with a fixed-height viewport.
type Model[T any] struct {
	items  []T
	render RenderFunc[T]
	keys   KeyMap

	cursor int
	offset int
	height int
}

// New creates a list showing height items at a time.
func New[T any](items []T, height int, render RenderFunc[T]) *Model[T] {
	m := &Model[T]{items: items, render: render, keys: DefaultKeyMap(), height: max(height, 1)}
	m.scroll()
	return m
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update moves the cursor on key presses.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Up):
		m.SetCursor(m.cursor - 1)
	case key.Matches(km, m.keys.Down):
		m.SetCursor(m.cursor + 1)
	case key.Matches(km, m.keys.PageUp):
		m.SetCursor(m.cursor - m.height)
	case key.Matches(km, m.keys.PageDown):
		m.SetCursor(m.cursor + m.height)
	case key.Matches(km, m.keys.Home):
		m.SetCursor(0)
	case key.Matches(km, m.keys.End):
		m.SetCursor(len(m.items) - 1)
	}
	return m, nil
}

// View renders the items inside the viewport.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	from, to := m.Window()
	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		lines = append(lines, m.render(m.items[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

// SetItems replaces the items, keeping the cursor in range.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.SetCursor(m.cursor)
}

// SetHeight resizes the viewport.
func (m *Model[T]) SetHeight(h int) {
	m.height = max(h, 1)
	m.scroll()
}

// SetCursor moves the cursor to i, clamped to the items.
func (m *Model[T]) SetCursor(i int) {
	m.cursor = max(0, min(i, len(m.items)-1))
	m.scroll()
}

// Cursor returns the cursor index.
func (m *Model[T]) Cursor() int {
	return m.cursor
}

// Len returns the number of items.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// Height returns the viewport height.
func (m *Model[T]) Height() int {
	return m.height
}

// Window returns the half-open range of item indices in the viewport.
func (m *Model[T]) Window() (int, int) {
	return m.offset, min(m.offset+m.height, len(m.items))
}

// Selected returns the item under the cursor, or nil for an empty list.
func (m *Model[T]) Selected() *T {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.cursor]
}

// scroll moves the viewport the minimum distance that keeps the cursor in it.
func (m *Model[T]) scroll() {
	if len(m.items) == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	m.offset = max(0, min(m.offset, len(m.items)-m.height))
}
