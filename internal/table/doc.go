// Package table is the adaptive tabular presentation engine used by every
// records page in the console.
//
// An Engine takes an arbitrary sequence of field-ordered rows plus optional
// column descriptors and derives everything a page needs to show them:
//   - column inference from the first row when no columns are given
//   - a capped, filtered column subset for the compact card layout
//   - locale-aware client-side sorting with nulls-last semantics
//   - one of two pagination strategies fixed at construction time:
//     ServerDriven (the caller owns page, size and totals and re-fetches on
//     change) or ClientDriven (the engine slices rows it already holds)
//
// Engine.View returns an immutable snapshot; RenderTable, RenderCards and
// RenderPlain draw that snapshot, so the wide and narrow layouts are always
// derived from the same state. The engine performs no I/O and never fails:
// malformed or missing fields degrade to empty cells.
package table
