// Package pager implements the pagination control surface shared by every
// records table in the console.
//
// A Controller holds no state of its own. The caller supplies the current page
// index, page size, and totals on every render, and the Controller turns user
// intent (previous, next, size selection) into change requests delivered through
// the OnPageChange and OnSizeChange callbacks. Whether those requests re-fetch a
// page from the backend or re-slice rows held in memory is the caller's business.
package pager
