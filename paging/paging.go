package paging

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// SiblingsCount is how many pages are shown on each side of the current one.
	SiblingsCount = 2
	// DefaultPerPage matches the API's default page size.
	DefaultPerPage = 10
	// DefaultItemLabel is appended to the range label when none is given.
	DefaultItemLabel = "itens"
)

// Summary is the "start - end de total" range shown under a paginated list.
type Summary struct {
	Start int
	End   int
	Total int
}

// NewSummary computes the visible range of a page. register is the number of
// items on the current page and defaults to perPage.
func NewSummary(currentPage, perPage, total int, register ...int) Summary {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if currentPage < 1 {
		currentPage = 1
	}
	reg := perPage
	if len(register) > 0 {
		reg = register[0]
	}
	return Summary{
		Start: perPage*(currentPage-1) + 1,
		End:   perPage*currentPage - (perPage - reg),
		Total: total,
	}
}

// String renders "11 - 20 de 25".
func (s Summary) String() string {
	return fmt.Sprintf("%d - %d de %d", s.Start, s.End, s.Total)
}

// Label renders the range followed by an item label, "itens" when empty.
func (s Summary) Label(itemLabel string) string {
	if itemLabel == "" {
		itemLabel = DefaultItemLabel
	}
	return s.String() + " " + itemLabel
}

// LastPage returns ceil(total/perPage), at least 1.
func LastPage(total, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	last := (total + perPage - 1) / perPage
	if last < 1 {
		return 1
	}
	return last
}

// Window lists the page buttons around the current page.
type Window struct {
	Current          int
	Last             int
	ShowFirst        bool
	LeadingEllipsis  bool
	Previous         []int
	Next             []int
	TrailingEllipsis bool
	ShowLast         bool
}

// NewWindow builds the page window for current within [1, last].
func NewWindow(current, last int) Window {
	if last < 1 {
		last = 1
	}
	if current < 1 {
		current = 1
	}
	if current > last {
		current = last
	}

	w := Window{Current: current, Last: last}
	for p := max(1, current-SiblingsCount); p < current; p++ {
		w.Previous = append(w.Previous, p)
	}
	for p := current + 1; p <= min(current+SiblingsCount, last); p++ {
		w.Next = append(w.Next, p)
	}

	w.ShowFirst = current > 1+SiblingsCount
	w.LeadingEllipsis = current > 2+SiblingsCount
	w.ShowLast = current+SiblingsCount < last
	w.TrailingEllipsis = current+1+SiblingsCount < last
	return w
}

// Pages flattens the window in display order; 0 marks an ellipsis.
func (w Window) Pages() []int {
	var out []int
	if w.ShowFirst {
		out = append(out, 1)
		if w.LeadingEllipsis {
			out = append(out, 0)
		}
	}
	out = append(out, w.Previous...)
	out = append(out, w.Current)
	out = append(out, w.Next...)
	if w.ShowLast {
		if w.TrailingEllipsis {
			out = append(out, 0)
		}
		out = append(out, w.Last)
	}
	return out
}

// String renders the window as "1 … 4 5 [6] 7 8 … 12".
func (w Window) String() string {
	pages := w.Pages()
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		switch p {
		case 0:
			parts = append(parts, "…")
		case w.Current:
			parts = append(parts, "["+strconv.Itoa(p)+"]")
		default:
			parts = append(parts, strconv.Itoa(p))
		}
	}
	return strings.Join(parts, " ")
}

// Params holds the page-based list parameters accepted by the API
type Params struct {
	Page  int `json:"page,omitempty" url:"page,omitempty"`
	Limit int `json:"limit,omitempty" url:"limit,omitempty"`
}

// NormalizeParams ensures that Page and Limit are within an acceptable range
func NormalizeParams(params Params) Params {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = DefaultPerPage
	}
	return params
}
