package table

// Mode selects who owns pagination state. It is fixed when the Engine is
// created.
type Mode interface {
	isMode()
}

// ServerDriven leaves page, size and totals to the caller, who fetches each
// page from the backend. The engine renders exactly the rows it is given and
// reports page and size requests through the Props callbacks. Sorting is
// unavailable in this mode.
type ServerDriven struct {
	Page          int
	Size          int
	TotalPages    int
	TotalElements int
}

// ClientDriven gives the engine the full dataset. It sorts and slices locally
// and owns page, size and sort state.
type ClientDriven struct {
	// PageSize overrides Config.DefaultPageSize for the initial page size.
	PageSize int
}

func (ServerDriven) isMode() {}
func (ClientDriven) isMode() {}

// clientState is the engine-owned state of a ClientDriven engine.
type clientState struct {
	page int
	size int
	sort SortState

	// dataset identity, used to reset the page when the rows change
	rowsLen  int
	rowsHead *Row
}

func (s *clientState) observe(rows []Row) {
	var head *Row
	if len(rows) > 0 {
		head = &rows[0]
	}
	if len(rows) != s.rowsLen || head != s.rowsHead {
		s.page = 0
	}
	s.rowsLen = len(rows)
	s.rowsHead = head
}
