package pager

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultPageSizes is the ordered set of selectable page sizes used when a
// Controller is given none.
//
//nolint:gochecknoglobals // Read-only default shared by controllers and config.
var DefaultPageSizes = []int{10, 25, 50, 100}

const summaryFormat = "Page %d of %d — %d records"

// Common controller errors.
var (
	ErrInvalidPageSize = errors.New("page size must be a positive integer")
	ErrUnknownPageSize = errors.New("page size is not one of the selectable sizes")
)

// State is the pagination state a Controller renders. PageIndex is zero-based.
type State struct {
	PageIndex     int
	PageSize      int
	TotalPages    int
	TotalElements int
}

// Visible reports whether pagination chrome should be shown at all. Single-page
// results get none.
func Visible(s State) bool {
	return s.TotalPages > 1 || s.TotalElements > s.PageSize
}

// DisplayPages returns the page count shown to users, never less than one.
func (s State) DisplayPages() int {
	if s.TotalPages < 1 {
		return 1
	}
	return s.TotalPages
}

// Controller turns navigation intent into page and size change requests.
type Controller struct {
	State

	// PageSizes is the ordered set of selectable sizes. Empty means DefaultPageSizes.
	PageSizes []int

	// OnPageChange receives the requested zero-based page index.
	OnPageChange func(page int)

	// OnSizeChange receives the newly selected page size.
	OnSizeChange func(size int)

	// GroupDigits formats Summary's numbers with Locale's digit grouping.
	GroupDigits bool
	Locale      language.Tag
}

// New creates a Controller for the given state with the default page sizes.
func New(state State, onPage, onSize func(int)) Controller {
	return Controller{
		State:        state,
		PageSizes:    DefaultPageSizes,
		OnPageChange: onPage,
		OnSizeChange: onSize,
	}
}

// Sizes returns the selectable page sizes.
func (c Controller) Sizes() []int {
	if len(c.PageSizes) == 0 {
		return DefaultPageSizes
	}
	return c.PageSizes
}

// CanPrev reports whether "previous" is enabled.
func (c Controller) CanPrev() bool {
	return c.PageIndex > 0
}

// CanNext reports whether "next" is enabled. An unknown (zero) page count
// disables it.
func (c Controller) CanNext() bool {
	return c.TotalPages > 0 && c.PageIndex < c.TotalPages-1
}

// Prev requests the previous page. It returns false and emits nothing when
// "previous" is disabled.
func (c Controller) Prev() bool {
	if !c.CanPrev() {
		return false
	}
	c.emitPage(max(c.PageIndex-1, 0))
	return true
}

// Next requests the next page. It returns false and emits nothing when "next"
// is disabled. Upper bounds beyond that are enforced by the caller.
func (c Controller) Next() bool {
	if !c.CanNext() {
		return false
	}
	c.emitPage(c.PageIndex + 1)
	return true
}

// SelectSize requests a new page size. The size must be one of Sizes().
func (c Controller) SelectSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, size)
	}
	if !slices.Contains(c.Sizes(), size) {
		return fmt.Errorf("%w: %d (valid: %s)", ErrUnknownPageSize, size, c.sizeList())
	}
	if c.OnSizeChange != nil {
		c.OnSizeChange(size)
	}
	return nil
}

// SelectSizeText parses a textual size selection (as produced by a select
// widget or a flag) and requests it as an integer.
func (c Controller) SelectSizeText(text string) error {
	size, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, text)
	}
	return c.SelectSize(size)
}

// CycleSize selects the size step positions away from the current one, wrapping
// at either end. A current size that is not in the list starts from the
// smallest listed size that is larger than it.
func (c Controller) CycleSize(step int) bool {
	sizes := c.Sizes()
	if len(sizes) == 0 || step == 0 {
		return false
	}

	idx := slices.Index(sizes, c.PageSize)
	if idx < 0 {
		idx = len(sizes) - 1
		for i, s := range sizes {
			if s > c.PageSize {
				idx = i
				break
			}
		}
		if step > 0 {
			step--
		}
	}

	next := ((idx+step)%len(sizes) + len(sizes)) % len(sizes)
	if sizes[next] == c.PageSize {
		return false
	}
	return c.SelectSize(sizes[next]) == nil
}

// Summary returns the page summary line, e.g. "Page 2 of 5 — 1200 records".
// With GroupDigits set the numbers are grouped for Locale, English when unset.
func (c Controller) Summary() string {
	if !c.GroupDigits {
		return fmt.Sprintf(summaryFormat, c.PageIndex+1, c.DisplayPages(), c.TotalElements)
	}
	tag := c.Locale
	if tag == language.Und {
		tag = language.English
	}
	return message.NewPrinter(tag).Sprintf(summaryFormat, c.PageIndex+1, c.DisplayPages(), c.TotalElements)
}

func (c Controller) emitPage(page int) {
	if c.OnPageChange != nil {
		c.OnPageChange(page)
	}
}

func (c Controller) sizeList() string {
	parts := make([]string, 0, len(c.Sizes()))
	for _, s := range c.Sizes() {
		parts = append(parts, strconv.Itoa(s))
	}
	return strings.Join(parts, ", ")
}
