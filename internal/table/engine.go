package table

import (
	"slices"

	"github.com/rshade/registrar/internal/pager"
)

// Props are the inputs a page feeds the engine on every change.
type Props struct {
	// Rows is the dataset. In server mode it is exactly one page.
	Rows []Row

	// Columns, when non-empty, is used verbatim. Otherwise columns are inferred.
	Columns []Column

	Loading bool

	// Error, when non-empty, replaces the data view with the message.
	Error string

	// EmptyText is shown when Rows is empty. Defaults to Config.EmptyText.
	EmptyText string

	// CardTitleKey names the field used as each card's title.
	CardTitleKey string

	// Compact asks the layouts for a denser rendering.
	Compact bool

	// OnRowClick makes rows interactive. It receives the clicked row.
	OnRowClick func(row Row)

	// OnPageChange and OnSizeChange receive server-mode page and size requests.
	OnPageChange func(page int)
	OnSizeChange func(size int)
}

// Engine derives columns, sort order and the visible page from Props. It is
// single-threaded: all methods must be called from the goroutine that owns
// the view.
type Engine struct {
	cfg   Config
	cmp   *Comparator
	props Props

	server *ServerDriven
	client *clientState
}

// New creates an engine with the pagination strategy fixed by mode. A nil mode
// means ClientDriven with the configured default page size.
func New(cfg Config, mode Mode) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{cfg: cfg, cmp: NewComparator(cfg.Locale)}

	switch m := mode.(type) {
	case ServerDriven:
		sd := m
		e.server = &sd
	case *ServerDriven:
		sd := *m
		e.server = &sd
	case ClientDriven:
		e.client = newClientState(m, cfg)
	case *ClientDriven:
		e.client = newClientState(*m, cfg)
	default:
		e.client = newClientState(ClientDriven{}, cfg)
	}
	return e
}

func newClientState(m ClientDriven, cfg Config) *clientState {
	size := m.PageSize
	if size <= 0 {
		size = cfg.DefaultPageSize
	}
	return &clientState{size: size, sort: SortState{Direction: SortAsc}}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// ServerSide reports whether the engine is ServerDriven.
func (e *Engine) ServerSide() bool {
	return e.server != nil
}

// Props returns the current props.
func (e *Engine) Props() Props {
	return e.props
}

// SetProps replaces the props. In client mode a changed dataset resets the page
// to the first one, and a sort key that no longer names a column is dropped.
func (e *Engine) SetProps(p Props) {
	e.props = p
	if e.client == nil {
		return
	}

	e.client.observe(p.Rows)
	if e.client.sort.Active() {
		cols := ResolveColumns(p.Columns, p.Rows)
		if len(cols) > 0 && !slices.ContainsFunc(cols, func(c Column) bool { return c.Key == e.client.sort.Key }) {
			e.client.sort = SortState{Direction: SortAsc}
		}
	}
}

// SetServerPage replaces the caller-owned pagination state. It reports false
// and does nothing for a ClientDriven engine.
func (e *Engine) SetServerPage(sd ServerDriven) bool {
	if e.server == nil {
		return false
	}
	*e.server = sd
	return true
}

// Sort returns the active sort. Server-driven engines never sort.
func (e *Engine) Sort() SortState {
	if e.client == nil {
		return SortState{}
	}
	return e.client.sort
}

// ClickHeader applies a header click on key. It is inert in server mode and
// reports whether the sort changed.
func (e *Engine) ClickHeader(key string) bool {
	if e.client == nil || key == "" {
		return false
	}
	e.client.sort = e.client.sort.Toggle(key)
	return true
}

// SortBy sets the sort directly, as a restored or flag-supplied state. It is
// inert in server mode.
func (e *Engine) SortBy(s SortState) bool {
	if e.client == nil {
		return false
	}
	if s.Direction == "" {
		s.Direction = SortAsc
	}
	e.client.sort = s
	return true
}

// ChangePage requests page. Server mode forwards the request to OnPageChange
// without touching any state; client mode moves to the page, clamped to the
// valid range.
func (e *Engine) ChangePage(page int) {
	if e.server != nil {
		if e.props.OnPageChange != nil {
			e.props.OnPageChange(page)
		}
		return
	}
	e.client.page = e.clampPage(page)
}

// ChangeSize requests a new page size. Server mode forwards to OnSizeChange;
// client mode applies it and returns to the first page.
func (e *Engine) ChangeSize(size int) {
	if e.server != nil {
		if e.props.OnSizeChange != nil {
			e.props.OnSizeChange(size)
		}
		return
	}
	if size <= 0 {
		return
	}
	e.client.size = size
	e.client.page = 0
}

// Controller returns the pagination controller wired to this engine.
func (e *Engine) Controller() pager.Controller {
	st, _ := e.pageState()
	return pager.Controller{
		State:        st,
		PageSizes:    e.cfg.PageSizes,
		OnPageChange: e.ChangePage,
		OnSizeChange: e.ChangeSize,
		GroupDigits:  e.cfg.GroupDigits,
		Locale:       e.cfg.Locale,
	}
}

// ClickRow forwards the row at index i of the current page to OnRowClick. It
// reports false when rows are inert or i is out of range.
func (e *Engine) ClickRow(i int) bool {
	if e.props.OnRowClick == nil {
		return false
	}
	v := e.View()
	if v.State != ViewRows || i < 0 || i >= len(v.Rows) {
		return false
	}
	e.props.OnRowClick(v.Rows[i].Row)
	return true
}

// View computes the current snapshot. Priority: loading, error, empty, rows.
func (e *Engine) View() View {
	cols := ResolveColumns(e.props.Columns, e.props.Rows)
	emptyText := e.props.EmptyText
	if emptyText == "" {
		emptyText = e.cfg.EmptyText
	}

	v := View{
		Columns:           cols,
		MobileColumns:     MobileColumns(cols, e.cfg.MobileColumnLimit),
		MobileColumnLimit: e.cfg.MobileColumnLimit,
		EmptyText:         emptyText,
		PageSizes:         e.cfg.PageSizes,
		Sort:              e.Sort(),
		ServerSide:        e.ServerSide(),
		Interactive:       e.props.OnRowClick != nil,
		Compact:           e.props.Compact,
		CardTitleKey:      e.props.CardTitleKey,
		CardTitleFallback: e.cfg.CardTitleFallback,
		GroupDigits:       e.cfg.GroupDigits,
		Locale:            e.cfg.Locale,
	}

	switch {
	case e.props.Loading:
		v.State = ViewLoading
		v.Placeholder = Placeholder{Columns: len(cols), Rows: e.cfg.PlaceholderRows}
		if v.Placeholder.Columns == 0 {
			v.Placeholder.Columns = e.cfg.PlaceholderColumns
		}
		return v
	case e.props.Error != "":
		v.State = ViewError
		v.Error = e.props.Error
		return v
	}

	st, rows := e.pageState()
	if pager.Visible(st) {
		v.Pagination = &st
	}
	if len(e.props.Rows) == 0 {
		v.State = ViewEmpty
		return v
	}
	v.State = ViewRows
	v.Rows = rows
	return v
}

// pageState computes the effective pagination state and the visible rows.
func (e *Engine) pageState() (pager.State, []VisibleRow) {
	rows := e.props.Rows

	if e.server != nil {
		st := pager.State{
			PageIndex:     max(e.server.Page, 0),
			PageSize:      e.server.Size,
			TotalPages:    e.server.TotalPages,
			TotalElements: e.server.TotalElements,
		}
		if st.PageSize <= 0 {
			st.PageSize = e.cfg.DefaultPageSize
		}
		if st.TotalPages <= 0 {
			st.TotalPages = 1
		}
		if st.TotalElements <= 0 {
			st.TotalElements = len(rows)
		}

		visible := make([]VisibleRow, len(rows))
		for i, r := range rows {
			visible[i] = VisibleRow{Row: r, Position: i, Source: i}
		}
		return st, visible
	}

	c := e.client
	c.page = e.clampPage(c.page)
	st := pager.State{
		PageIndex:     c.page,
		PageSize:      c.size,
		TotalPages:    clientTotalPages(len(rows), c.size),
		TotalElements: len(rows),
	}

	order := SortOrder(rows, c.sort, e.cmp)
	start := min(c.page*c.size, len(order))
	end := min(start+c.size, len(order))

	visible := make([]VisibleRow, 0, end-start)
	for pos := start; pos < end; pos++ {
		visible = append(visible, VisibleRow{Row: rows[order[pos]], Position: pos, Source: order[pos]})
	}
	return st, visible
}

// clampPage keeps a client page index inside the current data length.
func (e *Engine) clampPage(page int) int {
	last := clientTotalPages(len(e.props.Rows), e.client.size) - 1
	return max(0, min(page, last))
}

// clientTotalPages is ceil(n/size), never less than one.
func clientTotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}
