package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/registrar/internal/backend"
	"github.com/rshade/registrar/internal/logging"
	"github.com/rshade/registrar/internal/table"
	"github.com/rshade/registrar/internal/tui/detail"
	"github.com/rshade/registrar/internal/views"
)

// ErrNoRecordID is reported when a clicked row lacks its view's detail key.
var ErrNoRecordID = errors.New("row has no record id")

// ViewState is the browser's screen.
type ViewState int

const (
	// ViewStateList shows a resource table.
	ViewStateList ViewState = iota
	// ViewStateDetail shows one record.
	ViewStateDetail
	// ViewStateQuitting is set once quit was requested.
	ViewStateQuitting
)

const filterCharLimit = 100

// Fetcher is the backend surface the browser reads from.
type Fetcher interface {
	List(ctx context.Context, resource, query string) ([]table.Row, error)
	Page(ctx context.Context, resource string, req backend.PageRequest) (*backend.PageResult, error)
	Detail(ctx context.Context, resource, id string, relations ...backend.Relation) (*backend.DetailResult, error)
}

// BrowserOptions configures NewBrowser.
type BrowserOptions struct {
	// Resource is the first resource shown. Defaults to the first view.
	Resource string

	// ServerSide overrides every view's default pagination mode when set.
	ServerSide *bool

	// Modes overrides the pagination mode per resource when ServerSide is nil.
	Modes map[string]bool

	// PageSize is the initial page size. Zero uses Config.DefaultPageSize.
	PageSize int

	Config table.Config

	// Breakpoint is the width below which cards replace the table.
	Breakpoint int
}

type pageLoadedMsg struct {
	seq    int
	result *backend.PageResult
	err    error
}

type listLoadedMsg struct {
	seq  int
	rows []table.Row
	err  error
}

// Browser is the full-screen resource browser.
type Browser struct {
	ctx   context.Context
	fetch Fetcher
	opts  BrowserOptions
	keys  KeyMap

	state  ViewState
	view   views.View
	engine *table.Engine
	table  TableModel
	detail *detail.Model

	// Dataset. allRows is the unfiltered client-mode listing.
	allRows  []table.Row
	rows     []table.Row
	fetching bool
	errText  string
	status   string

	// Server request state.
	page int
	size int

	query     string
	filter    textinput.Model
	filtering bool

	seq     int
	pending []tea.Cmd

	loading *LoadingState
	help    help.Model
	width   int
	height  int
}

// NewBrowser creates a browser over f. It fails for an unknown resource.
func NewBrowser(ctx context.Context, f Fetcher, opts BrowserOptions) (*Browser, error) {
	if opts.Resource == "" {
		opts.Resource = views.Names()[0]
	}
	v, err := views.Lookup(opts.Resource)
	if err != nil {
		return nil, err
	}

	b := &Browser{
		ctx:     ctx,
		fetch:   f,
		opts:    opts,
		keys:    DefaultKeyMap(),
		filter:  newTextInput(),
		loading: NewLoadingState(),
		help:    help.New(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	b.switchTo(v)
	return b, nil
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter..."
	ti.CharLimit = filterCharLimit
	return ti
}

// Init starts the first fetch.
func (b *Browser) Init() tea.Cmd {
	return tea.Batch(b.loading.Init(), b.load())
}

// State returns the current screen.
func (b *Browser) State() ViewState {
	return b.state
}

// Resource returns the current resource name.
func (b *Browser) Resource() string {
	return b.view.Name
}

// Query returns the active filter.
func (b *Browser) Query() string {
	return b.query
}

// Engine returns the current resource's table engine.
func (b *Browser) Engine() *table.Engine {
	return b.engine
}

// Detail returns the open record page, or nil.
func (b *Browser) Detail() *detail.Model {
	return b.detail
}

// switchTo shows v with a fresh engine, filter and request state.
func (b *Browser) switchTo(v views.View) {
	cfg := b.opts.Config
	size := b.opts.PageSize
	if size <= 0 {
		size = cfg.DefaultPageSize
	}
	if size <= 0 {
		size = table.DefaultPageSize
	}

	serverSide := b.opts.ServerSide
	if server, ok := b.opts.Modes[v.Name]; ok && serverSide == nil {
		serverSide = &server
	}

	b.view = v
	b.engine = table.New(cfg, v.Mode(serverSide, size))
	b.table = NewTableModel(b.engine, b.opts.Breakpoint)
	b.table.SetWidth(b.width)
	b.page, b.size = 0, size
	b.allRows, b.rows = nil, nil
	b.query, b.errText, b.status = "", "", ""
	b.filter.SetValue("")
	b.sync()
}

// sync pushes the browser's dataset into the engine.
func (b *Browser) sync() {
	b.engine.SetProps(table.Props{
		Rows:         b.rows,
		Columns:      b.view.Columns,
		Loading:      b.fetching,
		Error:        b.errText,
		EmptyText:    b.view.EmptyText,
		CardTitleKey: b.view.CardTitleKey,
		OnRowClick:   b.openDetail,
		OnPageChange: b.requestPage,
		OnSizeChange: b.requestSize,
	})
}

// load fetches the current resource. Responses to older loads are dropped.
func (b *Browser) load() tea.Cmd {
	return b.loadWith(b.ctx)
}

// reload fetches the current resource from the service, skipping the
// response cache.
func (b *Browser) reload() tea.Cmd {
	return b.loadWith(backend.WithoutCache(b.ctx))
}

func (b *Browser) loadWith(ctx context.Context) tea.Cmd {
	b.seq++
	b.fetching, b.errText = true, ""
	b.loading.SetMessage("Loading " + b.view.Title + "...")
	b.sync()

	seq, name, f := b.seq, b.view.Name, b.fetch
	logging.FromContext(ctx).Debug().
		Str("component", "tui").
		Str("resource", name).
		Bool("server_side", b.engine.ServerSide()).
		Int("page", b.page).
		Int("size", b.size).
		Msg("loading resource")

	if b.engine.ServerSide() {
		req := backend.PageRequest{Page: b.page, Size: b.size, Query: b.query}
		return tea.Batch(b.loading.Init(), func() tea.Msg {
			res, err := f.Page(ctx, name, req)
			return pageLoadedMsg{seq: seq, result: res, err: err}
		})
	}
	return tea.Batch(b.loading.Init(), func() tea.Msg {
		rows, err := f.List(ctx, name, "")
		return listLoadedMsg{seq: seq, rows: rows, err: err}
	})
}

func (b *Browser) requestPage(page int) {
	b.page = max(page, 0)
	b.pending = append(b.pending, b.load())
}

func (b *Browser) requestSize(size int) {
	b.size, b.page = size, 0
	b.pending = append(b.pending, b.load())
}

func (b *Browser) openDetail(row table.Row) {
	id := b.view.RecordID(row)
	if id == "" {
		b.status = ErrNoRecordID.Error()
		return
	}

	v, f := b.view, b.fetch
	load := func(ctx context.Context) (*backend.DetailResult, error) {
		return f.Detail(ctx, v.Name, id, v.Relations...)
	}
	b.detail = detail.New(b.ctx, v, id, load, b.opts.Config)
	b.detail.SetSize(b.width, b.contentHeight())
	b.state = ViewStateDetail
	b.pending = append(b.pending, b.detail.Init())
}

// applyFilter filters locally in client mode and re-queries the backend from
// the first page in server mode.
func (b *Browser) applyFilter(q string) tea.Cmd {
	q = strings.TrimSpace(q)
	if q == b.query {
		return nil
	}
	b.query = q
	b.table.Reset()
	if b.engine.ServerSide() {
		b.page = 0
		return b.load()
	}
	b.rows = views.Filter(b.allRows, b.view.Columns, q)
	b.sync()
	return nil
}

// Update implements tea.Model.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := b.update(msg)
	if len(b.pending) > 0 {
		cmd = tea.Batch(append([]tea.Cmd{cmd}, b.pending...)...)
		b.pending = nil
	}
	return b, cmd
}

func (b *Browser) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.help.Width = msg.Width
		b.table.SetWidth(msg.Width)
		if b.detail != nil {
			b.detail.SetSize(msg.Width, b.contentHeight())
		}
		return nil

	case pageLoadedMsg:
		if msg.seq != b.seq {
			return nil
		}
		b.fetching = false
		if msg.err != nil {
			b.errText = msg.err.Error()
		} else {
			b.engine.SetServerPage(msg.result.ServerDriven())
			b.rows = msg.result.Rows
			b.page, b.size = msg.result.Number, msg.result.Size
		}
		b.sync()
		return nil

	case listLoadedMsg:
		if msg.seq != b.seq {
			return nil
		}
		b.fetching = false
		if msg.err != nil {
			b.errText = msg.err.Error()
		} else {
			b.allRows = msg.rows
			b.rows = views.Filter(b.allRows, b.view.Columns, b.query)
		}
		b.sync()
		return nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if b.fetching {
			cmds = append(cmds, b.loading.Update(msg))
		}
		if b.detail != nil {
			var cmd tea.Cmd
			b.detail, cmd = b.detail.Update(msg)
			cmds = append(cmds, cmd)
		}
		return tea.Batch(cmds...)

	case detail.LoadedMsg:
		if b.detail == nil {
			return nil
		}
		var cmd tea.Cmd
		b.detail, cmd = b.detail.Update(msg)
		return cmd

	case tea.KeyMsg:
		return b.handleKey(msg)
	}
	return nil
}

func (b *Browser) handleKey(msg tea.KeyMsg) tea.Cmd {
	if b.filtering {
		return b.handleFilterKey(msg)
	}
	if key.Matches(msg, b.keys.Quit) {
		b.state = ViewStateQuitting
		return tea.Quit
	}
	if key.Matches(msg, b.keys.Help) {
		b.help.ShowAll = !b.help.ShowAll
		return nil
	}

	if b.state == ViewStateDetail {
		if key.Matches(msg, b.keys.Back) {
			b.state, b.detail = ViewStateList, nil
			return nil
		}
		var cmd tea.Cmd
		b.detail, cmd = b.detail.Update(msg)
		return cmd
	}

	b.status = ""
	switch {
	case key.Matches(msg, b.keys.NextResource), key.Matches(msg, b.keys.PrevResource):
		step := 1
		if key.Matches(msg, b.keys.PrevResource) {
			step = -1
		}
		v, err := views.Lookup(views.Next(b.view.Name, step))
		if err != nil {
			b.status = err.Error()
			return nil
		}
		b.switchTo(v)
		return b.load()
	case key.Matches(msg, b.keys.Filter):
		b.filtering = true
		b.filter.SetValue(b.query)
		b.filter.CursorEnd()
		b.filter.Focus()
		return textinput.Blink
	case key.Matches(msg, b.keys.Reload):
		return b.reload()
	case key.Matches(msg, b.keys.Back):
		return b.applyFilter("")
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return cmd
}

func (b *Browser) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		b.filtering = false
		b.filter.Blur()
		return b.applyFilter(b.filter.Value())
	case tea.KeyEsc:
		b.filtering = false
		b.filter.Blur()
		b.filter.SetValue(b.query)
		return nil
	}
	var cmd tea.Cmd
	b.filter, cmd = b.filter.Update(msg)
	return cmd
}

// contentHeight is the height left for the table or detail page.
func (b *Browser) contentHeight() int {
	const chrome = 4
	return max(b.height-chrome, 1)
}

// View implements tea.Model.
func (b *Browser) View() string {
	if b.state == ViewStateQuitting {
		return ""
	}

	var body string
	if b.state == ViewStateDetail && b.detail != nil {
		body = b.detail.View()
	} else {
		body = b.table.View()
	}

	parts := []string{b.header(), body}
	if line := b.statusLine(); line != "" {
		parts = append(parts, line)
	}
	parts = append(parts, b.help.View(b.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (b *Browser) header() string {
	tabs := make([]string, 0, len(views.Names()))
	for _, name := range views.Names() {
		if name == b.view.Name {
			tabs = append(tabs, ActiveTabStyle.Render(b.view.Title))
			continue
		}
		tabs = append(tabs, TabStyle.Render(name))
	}

	mode := "client-side"
	if b.engine.ServerSide() {
		mode = "server-side"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		TitleStyle.Render("registrar")+"  ",
		strings.Join(tabs, ""),
		"  "+ModeStyle.Render(mode),
	)
}

func (b *Browser) statusLine() string {
	switch {
	case b.filtering:
		return b.filter.View()
	case b.status != "":
		return ErrorStyle.Render(b.status)
	case b.fetching && b.state == ViewStateList:
		return RenderLoading(b.loading)
	case b.query != "":
		return LabelStyle.Render("Filter: ") + ValueStyle.Render(b.query) + SubtleStyle.Render("  (esc to clear)")
	}
	return ""
}

// Run starts the browser full-screen and blocks until it quits or ctx ends.
func Run(ctx context.Context, b *Browser) error {
	_, err := tea.NewProgram(b, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
