package structs

import "github.com/teamops/dashboard/paging"

// Pagination is the list envelope returned by every paginated endpoint.
type Pagination[T any] struct {
	Data        []T `json:"data"`
	Total       int `json:"total"`
	CurrentPage int `json:"currentPage"`
	PerPage     int `json:"perPage"`
	Limit       int `json:"limit"`
	TotalPages  int `json:"totalPages,omitempty"`
}

// EmptyPagination is the value used before the first page arrives.
func EmptyPagination[T any]() *Pagination[T] {
	return &Pagination[T]{
		Data:        []T{},
		CurrentPage: 1,
		PerPage:     paging.DefaultPerPage,
		Limit:       paging.DefaultPerPage,
	}
}

// Summary returns the "start - end de total" range of this page.
func (p *Pagination[T]) Summary() paging.Summary {
	return paging.NewSummary(p.CurrentPage, p.perPage(), p.Total, len(p.Data))
}

// LastPage prefers the server's totalPages and computes it otherwise.
func (p *Pagination[T]) LastPage() int {
	if p.TotalPages > 0 {
		return p.TotalPages
	}
	return paging.LastPage(p.Total, p.perPage())
}

func (p *Pagination[T]) perPage() int {
	if p.PerPage > 0 {
		return p.PerPage
	}
	return p.Limit
}
