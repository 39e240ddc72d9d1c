// Package pagination turns an untrusted ?page= query value into a safe
// window over an ordered collection. Page numbers are 1-indexed; anything
// missing, malformed, or out of range resolves to a valid page rather than
// an error.
package pagination

import "strconv"

// PerPage is the number of feed items shown per page.
const PerPage = 10

// Page describes one window of a paginated collection.
type Page struct {
	Number     int
	PerPage    int
	TotalItems int
	TotalPages int
}

// New resolves a raw page parameter against a collection of totalItems.
// Missing or non-numeric input defaults to page 1; values past the end
// clamp to the last page. An empty collection still yields page 1 of 1 so
// callers always have a renderable page.
func New(raw string, totalItems, perPage int) Page {
	if perPage <= 0 {
		perPage = PerPage
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}

	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Offset returns the index of the first item on this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Limit returns the maximum number of items on this page.
func (p Page) Limit() int {
	return p.PerPage
}

// HasNext reports whether a page follows this one.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// HasPrevious reports whether a page precedes this one.
func (p Page) HasPrevious() bool {
	return p.Number > 1
}

// NextNumber returns the following page number, clamped to the last page.
func (p Page) NextNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.TotalPages
}

// PreviousNumber returns the preceding page number, clamped to 1.
func (p Page) PreviousNumber() int {
	if p.HasPrevious() {
		return p.Number - 1
	}
	return 1
}

// Slice returns the window of items covered by p. The input slice is never
// mutated; the result aliases it. Bounds are re-clamped so a Page built
// from a different total can never index out of range.
func Slice[T any](items []T, p Page) []T {
	start := p.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + p.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
