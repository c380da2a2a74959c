package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the browser's bindings. It implements help.KeyMap.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Grow     key.Binding
	Shrink   key.Binding

	NextColumn key.Binding
	PrevColumn key.Binding
	Sort       key.Binding
	SortNth    key.Binding

	NextResource key.Binding
	PrevResource key.Binding
	Filter       key.Binding
	Reload       key.Binding
	Back         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the browser bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		PrevPage: key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
		NextPage: key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
		Grow:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more rows")),
		Shrink:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "fewer rows")),

		NextColumn: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next column")),
		PrevColumn: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev column")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		SortNth: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "sort by column n"),
		),

		NextResource: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next resource")),
		PrevResource: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev resource")),
		Filter:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.PrevPage, k.NextPage, k.Filter, k.NextResource, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back},
		{k.PrevPage, k.NextPage, k.Grow, k.Shrink},
		{k.NextColumn, k.PrevColumn, k.Sort, k.SortNth},
		{k.NextResource, k.PrevResource, k.Filter, k.Reload, k.Quit},
	}
}
