package table

import (
	"golang.org/x/text/language"

	"github.com/rshade/registrar/internal/pager"
)

// Engine defaults.
const (
	DefaultPageSize          = 25
	DefaultMobileColumnLimit = 4
	DefaultPlaceholderCols   = 7
	DefaultPlaceholderRows   = 20
	DefaultEmptyText         = "No data"
	DefaultCardTitleFallback = "Record"
)

// Config holds the engine's tunables. Zero fields take the defaults above.
type Config struct {
	// DefaultPageSize is the client-driven page size before the user picks one.
	DefaultPageSize int

	// PageSizes is the ordered set offered by the pagination controller.
	PageSizes []int

	// MobileColumnLimit caps the number of columns shown on a card.
	MobileColumnLimit int

	// PlaceholderColumns is the loading skeleton width when no columns are known.
	PlaceholderColumns int

	// PlaceholderRows is the loading skeleton height.
	PlaceholderRows int

	// EmptyText is shown for an empty dataset when the caller supplies none.
	EmptyText string

	// CardTitleFallback titles a card whose title field is missing.
	CardTitleFallback string

	// Locale drives string collation when sorting.
	Locale language.Tag

	// GroupDigits formats the pager summary's numbers for Locale. Off, they
	// are plain integers.
	GroupDigits bool
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		DefaultPageSize:    DefaultPageSize,
		PageSizes:          append([]int(nil), pager.DefaultPageSizes...),
		MobileColumnLimit:  DefaultMobileColumnLimit,
		PlaceholderColumns: DefaultPlaceholderCols,
		PlaceholderRows:    DefaultPlaceholderRows,
		EmptyText:          DefaultEmptyText,
		CardTitleFallback:  DefaultCardTitleFallback,
		Locale:             language.English,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = d.DefaultPageSize
	}
	if len(c.PageSizes) == 0 {
		c.PageSizes = d.PageSizes
	}
	if c.MobileColumnLimit <= 0 {
		c.MobileColumnLimit = d.MobileColumnLimit
	}
	if c.PlaceholderColumns <= 0 {
		c.PlaceholderColumns = d.PlaceholderColumns
	}
	if c.PlaceholderRows <= 0 {
		c.PlaceholderRows = d.PlaceholderRows
	}
	if c.EmptyText == "" {
		c.EmptyText = d.EmptyText
	}
	if c.CardTitleFallback == "" {
		c.CardTitleFallback = d.CardTitleFallback
	}
	if c.Locale == language.Und {
		c.Locale = d.Locale
	}
	return c
}
