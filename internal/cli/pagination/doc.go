// Package pagination provides the page and sort flag handling shared by the
// registrar list commands.
//
// It contains:
//   - Params: --page, --page-size and --sort parsing and validation
//   - Meta: pagination metadata attached to structured (json/yaml) output
//   - SortField validation against a resource's columns
//
// CLI pages are 1-based. Params.PageIndex converts to the 0-based index the
// table engine and the backend use.
package pagination
