package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/rshade/registrar/internal/pager"
)

// Layout is the presentation chosen for a snapshot.
type Layout int

const (
	// LayoutTable is the wide, tabular layout.
	LayoutTable Layout = iota
	// LayoutCards is the narrow layout: one card per row.
	LayoutCards
)

// String returns the layout name.
func (l Layout) String() string {
	if l == LayoutCards {
		return "cards"
	}
	return "table"
}

// LayoutFor picks cards for terminals narrower than breakpoint. An unknown
// (zero) width keeps the table layout.
func LayoutFor(width, breakpoint int) Layout {
	if width > 0 && width < breakpoint {
		return LayoutCards
	}
	return LayoutTable
}

const (
	placeholderCell = "░░░░░░░░"
	ellipsis        = "…"
	plainColumnGap  = "  "
	cardBorderWidth = 2
)

// Styles controls the look of both layouts.
type Styles struct {
	Header       lipgloss.Style
	FocusHeader  lipgloss.Style
	Cell         lipgloss.Style
	Selected     lipgloss.Style
	Border       lipgloss.Style
	Placeholder  lipgloss.Style
	Empty        lipgloss.Style
	Error        lipgloss.Style
	Card         lipgloss.Style
	SelectedCard lipgloss.Style
	CardTitle    lipgloss.Style
	CardLabel    lipgloss.Style
	Pager        pager.Styles
}

// DefaultStyles returns the console palette.
func DefaultStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		FocusHeader: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("229")),
		Cell:        lipgloss.NewStyle(),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		Border:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Placeholder: lipgloss.NewStyle().Faint(true),
		Empty:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		Error:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		SelectedCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("57")).
			Padding(0, 1),
		CardTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		CardLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Pager:     pager.DefaultStyles(),
	}
}

// RenderOptions carries presentation-time inputs that are not part of the
// data snapshot.
type RenderOptions struct {
	// Width is the available width in cells. Zero means unbounded.
	Width int

	// Cursor highlights the row at this index of View.Rows. -1 for none.
	Cursor int

	// FocusColumn highlights this column header. -1 for none.
	FocusColumn int

	Styles Styles
}

// DefaultRenderOptions returns options with no cursor and no focused column.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Cursor: -1, FocusColumn: -1, Styles: DefaultStyles()}
}

// Render draws v in the given layout.
func Render(v View, layout Layout, opts RenderOptions) string {
	if layout == LayoutCards {
		return RenderCards(v, opts)
	}
	return RenderTable(v, opts)
}

// RenderTable draws v as a bordered table followed by pagination chrome.
func RenderTable(v View, opts RenderOptions) string {
	st := opts.Styles
	switch v.State {
	case ViewLoading:
		return tableSkeleton(v, opts)
	case ViewError:
		return st.Error.Render(v.Error)
	case ViewEmpty:
		return withPager(st.Empty.Render(v.EmptyText), v, st)
	}

	headers := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		headers[i] = headerLabel(c, v.Sort)
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Border).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			pad := cellPadding(v.Compact)
			if row == ltable.HeaderRow {
				if col == opts.FocusColumn {
					return st.FocusHeader.Padding(pad...)
				}
				return st.Header.Padding(pad...)
			}
			base := st.Cell
			if row == opts.Cursor {
				base = st.Selected
			}
			if col >= 0 && col < len(v.Columns) {
				base = base.Inherit(v.Columns[col].Style)
			}
			return base.Padding(pad...)
		})
	if opts.Width > 0 {
		t = t.Width(opts.Width)
	}

	for _, vr := range v.Rows {
		t.Row(rowCells(v.Columns, vr.Row)...)
	}

	return withPager(t.String(), v, st)
}

// RenderCards draws v as a vertical stack of cards using the mobile columns.
func RenderCards(v View, opts RenderOptions) string {
	st := opts.Styles
	switch v.State {
	case ViewLoading:
		return cardSkeleton(v, opts)
	case ViewError:
		return st.Error.Render(v.Error)
	case ViewEmpty:
		return withPager(st.Empty.Render(v.EmptyText), v, st)
	}

	cards := make([]string, 0, len(v.Rows))
	for i, vr := range v.Rows {
		lines := []string{st.CardTitle.Render(v.CardTitle(vr.Row))}
		for _, c := range v.MobileColumns {
			lines = append(lines, st.CardLabel.Render(c.Label()+":")+" "+c.Style.Render(truncate(c.Cell(vr.Row), c.Width)))
		}

		box := st.Card
		if i == opts.Cursor {
			box = st.SelectedCard
		}
		cards = append(cards, sizeCard(box, opts.Width).Render(strings.Join(lines, "\n")))
	}

	return withPager(joinCards(cards, v.Compact), v, st)
}

// RenderPlain draws v without styling or borders: padded columns, a dashed
// header rule, and the pagination summary. It is used for non-terminal output.
func RenderPlain(v View) string {
	switch v.State {
	case ViewLoading:
		return "Loading..."
	case ViewError:
		return v.Error
	case ViewEmpty:
		return plainWithSummary(v.EmptyText, v)
	}

	cells := make([][]string, 0, len(v.Rows)+1)
	header := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		header[i] = headerLabel(c, v.Sort)
	}
	cells = append(cells, header)
	for _, vr := range v.Rows {
		row := rowCells(v.Columns, vr.Row)
		for i := range row {
			row[i] = ansi.Strip(row[i])
		}
		cells = append(cells, row)
	}

	widths := make([]int, len(v.Columns))
	for _, row := range cells {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var sb strings.Builder
	for r, row := range cells {
		sb.WriteString(plainLine(row, widths))
		sb.WriteString("\n")
		if r == 0 {
			rule := make([]string, len(widths))
			for i, w := range widths {
				rule[i] = strings.Repeat("-", w)
			}
			sb.WriteString(plainLine(rule, widths))
			sb.WriteString("\n")
		}
	}

	return plainWithSummary(strings.TrimSuffix(sb.String(), "\n"), v)
}

func plainLine(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = runewidth.FillRight(c, widths[i])
	}
	return strings.TrimRight(strings.Join(parts, plainColumnGap), " ")
}

func plainWithSummary(body string, v View) string {
	ctrl, ok := v.Controller()
	if !ok {
		return body
	}
	return body + "\n\n" + ctrl.Summary()
}

func withPager(body string, v View, st Styles) string {
	ctrl, ok := v.Controller()
	if !ok {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, ctrl.View(st.Pager))
}

func headerLabel(c Column, s SortState) string {
	label := c.Label()
	if s.Active() && s.Key == c.Key {
		if s.Direction == SortDesc {
			return label + " ▼"
		}
		return label + " ▲"
	}
	return label
}

func rowCells(cols []Column, row Row) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = truncate(c.Cell(row), c.Width)
	}
	return out
}

// truncate shortens s to width cells, keeping ANSI styling intact.
func truncate(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, ellipsis)
}

func cellPadding(compact bool) []int {
	if compact {
		return []int{0, 0}
	}
	return []int{0, 1}
}

func tableSkeleton(v View, opts RenderOptions) string {
	st := opts.Styles
	n := v.Placeholder.Columns
	headers := make([]string, n)
	for i := range headers {
		if i < len(v.Columns) {
			headers[i] = v.Columns[i].Label()
		}
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Border).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return st.Header.Padding(cellPadding(v.Compact)...)
			}
			return st.Placeholder.Padding(cellPadding(v.Compact)...)
		})
	if opts.Width > 0 {
		t = t.Width(opts.Width)
	}
	for range v.Placeholder.Rows {
		row := make([]string, n)
		for i := range row {
			row[i] = placeholderCell
		}
		t.Row(row...)
	}
	return t.String()
}

func cardSkeleton(v View, opts RenderOptions) string {
	st := opts.Styles
	lines := len(v.MobileColumns)
	if lines == 0 {
		limit := v.MobileColumnLimit
		if limit <= 0 {
			limit = DefaultMobileColumnLimit
		}
		lines = min(v.Placeholder.Columns, limit)
	}

	body := make([]string, 0, lines+1)
	body = append(body, st.Placeholder.Render(placeholderCell))
	for range lines {
		body = append(body, st.Placeholder.Render(placeholderCell+" "+placeholderCell))
	}
	card := sizeCard(st.Card, opts.Width).Render(strings.Join(body, "\n"))

	cards := make([]string, v.Placeholder.Rows)
	for i := range cards {
		cards[i] = card
	}
	return joinCards(cards, v.Compact)
}

func sizeCard(box lipgloss.Style, width int) lipgloss.Style {
	if width > cardBorderWidth {
		return box.Width(width - cardBorderWidth)
	}
	return box
}

func joinCards(cards []string, compact bool) string {
	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return strings.Join(cards, sep)
}
