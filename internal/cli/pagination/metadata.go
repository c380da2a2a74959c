package pagination

import "github.com/rshade/registrar/internal/pager"

// Meta describes the page carried in structured output. CurrentPage is 1-based.
type Meta struct {
	CurrentPage int    `json:"current_page" yaml:"current_page"`
	PageSize    int    `json:"page_size"    yaml:"page_size"`
	TotalPages  int    `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int    `json:"total_items"  yaml:"total_items"`
	HasPrevious bool   `json:"has_previous" yaml:"has_previous"`
	HasNext     bool   `json:"has_next"     yaml:"has_next"`
	Mode        string `json:"mode"         yaml:"mode"`
}

// Mode names used in Meta.
const (
	ModeClient = "client"
	ModeServer = "server"
)

// NewMeta creates metadata from an engine pagination state.
func NewMeta(st pager.State, serverSide bool) Meta {
	mode := ModeClient
	if serverSide {
		mode = ModeServer
	}
	total := st.DisplayPages()
	return Meta{
		CurrentPage: st.PageIndex + 1,
		PageSize:    st.PageSize,
		TotalPages:  total,
		TotalItems:  st.TotalElements,
		HasPrevious: st.PageIndex > 0,
		HasNext:     st.PageIndex+1 < total,
		Mode:        mode,
	}
}
