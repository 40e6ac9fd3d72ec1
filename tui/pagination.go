package tui

import (
	"fmt"
	"strconv"
	"strings"

	"mtodo/internal/application/controller"
	"mtodo/internal/application/query"
	"mtodo/tui/style"
)

// renderPagination renders "Showing X to Y of Z", the page buttons and the page size
func renderPagination(snap controller.Snapshot) string {
	page := snap.Query.Page
	size := snap.Query.PageSize
	total := snap.Pagination.TotalItems
	totalPages := max(snap.Pagination.TotalPages, 1)

	var summary string
	if from, to := query.Range(page, size, total); from > 0 {
		summary = fmt.Sprintf("Showing %d to %d of %d", from, to, total)
	} else {
		summary = fmt.Sprintf("Showing 0 of %d", total)
	}

	first := page > 1
	last := page < totalPages

	buttons := []string{
		pageButton("«", first),
		pageButton("‹", first),
	}
	for _, p := range query.VisiblePages(page, totalPages) {
		switch p {
		case query.Ellipsis:
			buttons = append(buttons, style.DisabledPageStyle.Render("…"))
		case page:
			buttons = append(buttons, style.CurrentPageStyle.Render(strconv.Itoa(p)))
		default:
			buttons = append(buttons, style.PaginationStyle.Render(strconv.Itoa(p)))
		}
	}
	buttons = append(buttons, pageButton("›", last), pageButton("»", last))

	perPage := style.PaginationStyle.Render(fmt.Sprintf("Per page: %d", size))

	return strings.Join([]string{
		style.PaginationStyle.Render(summary),
		strings.Join(buttons, " "),
		perPage,
	}, "   ")
}

func pageButton(label string, enabled bool) string {
	if enabled {
		return style.PaginationStyle.Render(label)
	}
	return style.DisabledPageStyle.Render(label)
}
