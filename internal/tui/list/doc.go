// Package listview provides a scrolling viewport over a list of items for
// Bubble Tea views.
//
// Only the items inside the viewport are rendered, so long record detail
// pages stay cheap to redraw. The cursor is kept visible as it moves.
package listview
