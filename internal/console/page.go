package console

import "github.com/libroteca/librocli/internal/models"

// Page is the rendered view of one listing fetch. It is rebuilt on every
// fetch and never mutated in place.
type Page struct {
	Items         []models.Libro
	Index         int
	TotalPages    int   // 0 = unknown
	TotalElements int64 // -1 = unknown
	InferredLast  bool
}

// NewPage folds backend pagination metadata over the requested index and
// size. Missing metadata falls back to inference: a short page is the
// last one. An exactly-full final page is therefore classified as
// not-last; the follow-up fetch then comes back empty.
func NewPage(listing models.LibroPage, requestedIndex, requestedSize int) Page {
	items := listing.Content
	if items == nil {
		items = []models.Libro{}
	}
	index := requestedIndex
	if listing.Number != nil {
		index = *listing.Number
	}
	totalPages := 0
	if listing.TotalPages != nil {
		totalPages = *listing.TotalPages
	}
	totalElements := int64(-1)
	if listing.TotalElements != nil {
		totalElements = *listing.TotalElements
	}
	return Page{
		Items:         items,
		Index:         index,
		TotalPages:    totalPages,
		TotalElements: totalElements,
		InferredLast:  len(items) < requestedSize,
	}
}

func (p Page) HasPrev() bool {
	return p.Index > 0
}

func (p Page) HasNext() bool {
	if p.TotalPages > 0 {
		return p.Index < p.TotalPages-1
	}
	return !p.InferredLast
}
