package models

import "encoding/json"

// Meta describes the position of a page within a paginated listing.
type Meta struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

// Page is the envelope returned by list endpoints.
type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}

// UnmarshalJSON decodes the envelope. Items is never nil afterwards, even
// when the payload omits it or sends null.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	type envelope Page[T]
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	if e.Items == nil {
		e.Items = []T{}
	}
	*p = Page[T](e)
	return nil
}

// Len returns the number of items on the page.
func (p *Page[T]) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Items)
}

// HasNext reports whether more pages follow this one.
func (p *Page[T]) HasNext() bool {
	if p == nil {
		return false
	}
	return p.Meta.CurrentPage < p.Meta.TotalPages
}
