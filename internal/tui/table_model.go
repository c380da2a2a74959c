package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/registrar/internal/table"
)

// TableModel hosts a table engine in Bubble Tea: it turns key presses into
// row clicks, page and size requests, column focus and header clicks, and
// picks the layout from the terminal width.
//
//nolint:recvcheck // Bubble Tea models use value receivers for Update and View.
type TableModel struct {
	engine *table.Engine
	keys   KeyMap
	styles table.Styles

	cursor     int
	focus      int
	width      int
	breakpoint int
}

// NewTableModel wraps e. Terminals narrower than breakpoint get cards.
func NewTableModel(e *table.Engine, breakpoint int) TableModel {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	return TableModel{
		engine:     e,
		keys:       DefaultKeyMap(),
		styles:     table.DefaultStyles(),
		breakpoint: breakpoint,
		width:      defaultWidth,
	}
}

// Engine returns the hosted engine.
func (m TableModel) Engine() *table.Engine {
	return m.engine
}

// Cursor returns the highlighted row of the current page.
func (m TableModel) Cursor() int {
	return m.cursor
}

// Focus returns the focused column index.
func (m TableModel) Focus() int {
	return m.focus
}

// Layout returns the layout for the current width.
func (m TableModel) Layout() table.Layout {
	return table.LayoutFor(m.width, m.breakpoint)
}

// SetWidth sets the available width.
func (m *TableModel) SetWidth(w int) {
	m.width = w
}

// Reset returns the cursor and column focus to the start.
func (m *TableModel) Reset() {
	m.cursor, m.focus = 0, 0
}

// Update handles resizes and the table key bindings. Engine callbacks run
// synchronously inside Update.
func (m TableModel) Update(msg tea.Msg) (TableModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		m.handleKey(msg)
	}
	m.clamp()
	return m, nil
}

//nolint:cyclop // One branch per binding.
func (m *TableModel) handleKey(msg tea.KeyMsg) {
	v := m.engine.View()
	ctrl := m.engine.Controller()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.Open):
		m.engine.ClickRow(m.cursor)
	case key.Matches(msg, m.keys.PrevPage):
		if ctrl.Prev() {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.NextPage):
		if ctrl.Next() {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Grow):
		if ctrl.CycleSize(1) {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Shrink):
		if ctrl.CycleSize(-1) {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.NextColumn):
		if n := len(v.Columns); n > 0 {
			m.focus = (m.focus + 1) % n
		}
	case key.Matches(msg, m.keys.PrevColumn):
		if n := len(v.Columns); n > 0 {
			m.focus = (m.focus - 1 + n) % n
		}
	case key.Matches(msg, m.keys.Sort):
		if m.focus < len(v.Columns) {
			m.engine.ClickHeader(v.Columns[m.focus].Key)
		}
	case key.Matches(msg, m.keys.SortNth):
		n := int(msg.Runes[0] - '1')
		if n < len(v.Columns) {
			m.focus = n
			m.engine.ClickHeader(v.Columns[n].Key)
		}
	}
}

func (m *TableModel) clamp() {
	v := m.engine.View()
	m.cursor = max(0, min(m.cursor, len(v.Rows)-1))
	m.focus = max(0, min(m.focus, len(v.Columns)-1))
}

// View renders the engine snapshot in the layout for the current width.
func (m TableModel) View() string {
	v := m.engine.View()
	opts := table.RenderOptions{
		Width:       m.width,
		Cursor:      -1,
		FocusColumn: -1,
		Styles:      m.styles,
	}
	if v.Interactive {
		opts.Cursor = m.cursor
	}
	if len(v.Columns) > 0 {
		opts.FocusColumn = m.focus
	}
	return table.Render(v, m.Layout(), opts)
}
