package query

// TotalPages returns how many pages total items fill at the given size.
// An empty listing still has one page.
func TotalPages(total, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// ClampPage keeps page inside [1, max(totalPages, 1)]
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Range returns the 1-based positions of the first and last item on a page,
// for "Showing X to Y of Z". Both are 0 when there are no items.
func Range(page, size, total int) (from, to int) {
	if total <= 0 || size < 1 || page < 1 {
		return 0, 0
	}
	from = (page-1)*size + 1
	if from > total {
		return 0, 0
	}
	to = page * size
	if to > total {
		to = total
	}
	return from, to
}

// Ellipsis marks a gap in the list returned by VisiblePages
const Ellipsis = 0

// VisiblePages returns the page buttons to show: the pages within two of the
// current one, plus the first and last page separated by Ellipsis where
// pages were skipped.
func VisiblePages(current, totalPages int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	current = ClampPage(current, totalPages)

	const window = 2
	start := current - window
	if start < 1 {
		start = 1
	}
	end := current + window
	if end > totalPages {
		end = totalPages
	}

	pages := make([]int, 0, end-start+5)
	if start > 1 {
		pages = append(pages, 1)
		if start > 2 {
			pages = append(pages, Ellipsis)
		}
	}
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	if end < totalPages {
		if end < totalPages-1 {
			pages = append(pages, Ellipsis)
		}
		pages = append(pages, totalPages)
	}
	return pages
}
