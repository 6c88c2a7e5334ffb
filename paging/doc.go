// Package paging holds the page-number arithmetic of paginated lists.
//
// The API paginates with page and limit. A list footer shows the visible
// range and a window of page buttons:
//
//	s := paging.NewSummary(2, 10, 25)
//	s.String()        // "11 - 20 de 25"
//	s.Label("tarefas") // "11 - 20 de 25 tarefas"
//
//	last := paging.LastPage(120, 10) // 12
//	paging.NewWindow(6, last).String() // "1 … 4 5 [6] 7 8 … 12"
//
// The window keeps two siblings on each side of the current page. The first
// page is shown once it falls out of the window and an ellipsis marks the gap
// when more than one page is hidden; the last page follows the same rule.
package paging
