package detail

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/registrar/internal/backend"
	"github.com/rshade/registrar/internal/table"
	listview "github.com/rshade/registrar/internal/tui/list"
	"github.com/rshade/registrar/internal/views"
)

// State is the page's load state.
type State int

const (
	// StateLoading means the fetch is in flight.
	StateLoading State = iota
	// StateError means the last fetch failed.
	StateError
	// StateReady means the record is shown.
	StateReady
)

const (
	defaultWidth  = 80
	defaultHeight = 20
	chromeHeight  = 3
	labelWidth    = 14
)

// LoadFunc fetches the record and its relations.
type LoadFunc func(ctx context.Context) (*backend.DetailResult, error)

// LoadedMsg carries a finished fetch for the record ID.
type LoadedMsg struct {
	ID     string
	Result *backend.DetailResult
	Err    error
}

// Styles controls the page's look.
type Styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Error   lipgloss.Style
	Subtle  lipgloss.Style
	Table   table.Styles
}

// DefaultStyles returns the console palette.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginTop(1),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(labelWidth),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Subtle:  lipgloss.NewStyle().Faint(true),
		Table:   table.DefaultStyles(),
	}
}

var retryKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry"))

// Model is the detail page for one record.
type Model struct {
	ctx  context.Context
	view views.View
	id   string
	load LoadFunc
	cfg  table.Config

	state  State
	result *backend.DetailResult
	err    error

	spinner spinner.Model
	lines   *listview.Model[string]
	styles  Styles
	width   int
	height  int
}

// New creates the page for record id of view. Call Init to start the fetch.
func New(ctx context.Context, v views.View, id string, load LoadFunc, cfg table.Config) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:     ctx,
		view:    v,
		id:      id,
		load:    load,
		cfg:     cfg,
		state:   StateLoading,
		spinner: sp,
		styles:  DefaultStyles(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.lines = listview.New([]string{}, m.bodyHeight(), func(line string, _ bool) string { return line })
	return m
}

// Init starts the fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

// ID returns the record id the page was opened for.
func (m *Model) ID() string {
	return m.id
}

// State returns the load state.
func (m *Model) State() State {
	return m.state
}

// Err returns the last fetch error.
func (m *Model) Err() error {
	return m.err
}

// Result returns the loaded record, or nil.
func (m *Model) Result() *backend.DetailResult {
	return m.result
}

// SetSize resizes the page.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.lines.SetHeight(m.bodyHeight())
	m.rebuild()
}

func (m *Model) fetch() tea.Cmd {
	ctx, id, load := m.ctx, m.id, m.load
	return func() tea.Msg {
		res, err := load(ctx)
		return LoadedMsg{ID: id, Result: res, Err: err}
	}
}

// Update handles fetch results, retries, resizes and scrolling.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.ID != m.id {
			return m, nil
		}
		if msg.Err != nil {
			m.state, m.err = StateError, msg.Err
			return m, nil
		}
		m.state, m.err, m.result = StateReady, nil, msg.Result
		m.rebuild()
		m.lines.SetCursor(0)
		return m, nil

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.state == StateError && key.Matches(msg, retryKey) {
			m.state, m.err = StateLoading, nil
			return m, tea.Batch(m.spinner.Tick, m.fetch())
		}
		if m.state == StateReady {
			m.lines.Update(msg)
		}
	}
	return m, nil
}

// View renders the page.
func (m *Model) View() string {
	title := m.styles.Title.Render(fmt.Sprintf("%s › %s", m.view.Title, m.id))

	switch m.state {
	case StateLoading:
		return title + "\n\n " + m.spinner.View() + " Loading " + m.id + "..."
	case StateError:
		return title + "\n\n" + m.styles.Error.Render(m.err.Error()) + "\n\n" +
			m.styles.Subtle.Render("r retry • esc back")
	case StateReady:
	}
	return title + "\n\n" + m.lines.View()
}

func (m *Model) bodyHeight() int {
	return max(m.height-chromeHeight, 1)
}

// rebuild refreshes the scrolling list from the loaded record.
func (m *Model) rebuild() {
	if m.result == nil {
		return
	}
	m.lines.SetItems(Lines(m.view, m.result, m.cfg, LineOptions{Width: m.width, Styles: m.styles}))
}

// LineOptions controls Lines.
type LineOptions struct {
	// Width bounds the related tables. Zero means unbounded.
	Width int

	// Plain draws related collections without borders or styling.
	Plain bool

	Styles Styles
}

// Lines lays a record out as one label/value line per field, then one table
// per relation of v.
func Lines(v views.View, res *backend.DetailResult, cfg table.Config, opts LineOptions) []string {
	st := opts.Styles
	var lines []string
	for _, f := range res.Record.Fields() {
		label, value := f.Key, table.FormatValue(f.Value)
		if c, ok := v.Column(f.Key); ok {
			label, value = c.Label(), c.Cell(res.Record)
		}
		lines = append(lines, st.Label.Render(label)+st.Value.Render(value))
	}

	for _, rel := range v.Relations {
		rows := res.Related[rel.Name]
		lines = append(lines, "", st.Section.Render(fmt.Sprintf("%s (%d)", strings.ToUpper(rel.Name), len(rows))))
		lines = append(lines, strings.Split(relatedTable(rel, rows, cfg, opts), "\n")...)
	}
	return lines
}

func relatedTable(rel backend.Relation, rows []table.Row, cfg table.Config, opts LineOptions) string {
	props := table.Props{Rows: rows, EmptyText: "None", Compact: true}
	if v, err := views.Lookup(rel.Resource); err == nil {
		props.Columns = v.Columns
		props.EmptyText = v.EmptyText
	}

	// One page holding every related row.
	e := table.New(cfg, table.ClientDriven{PageSize: max(len(rows), 1)})
	e.SetProps(props)

	if opts.Plain {
		return table.RenderPlain(e.View())
	}
	ro := table.DefaultRenderOptions()
	ro.Styles = opts.Styles.Table
	ro.Width = opts.Width
	return table.RenderTable(e.View(), ro)
}
