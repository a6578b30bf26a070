package match

// DefaultPerPage is the page size used when none is given
const DefaultPerPage = 10

// Page is one page of search results
type Page struct {
	Items      []Result `json:"results"`
	Page       int      `json:"page"`
	PerPage    int      `json:"perPage"`
	Total      int      `json:"total"`
	TotalPages int      `json:"totalPages"`
}

// Paginate returns the 1-based page of results. Pages past the end clamp
// to the last page; an empty result set yields page 1 of 0.
func Paginate(results []Result, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total := len(results)
	totalPages := (total + perPage - 1) / perPage

	switch {
	case page < 1 || totalPages == 0:
		page = 1
	case page > totalPages:
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      results[start:end],
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Ellipsis marks a gap in a page window
const Ellipsis = 0

// PageWindow returns the page numbers to show for a pager: the first and
// last page always, current±delta in between, Ellipsis where pages are
// skipped. It returns nil when there is at most one page.
func PageWindow(current, totalPages, delta int) []int {
	if totalPages <= 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	window := []int{1}
	if current-delta > 2 {
		window = append(window, Ellipsis)
	}

	lo := current - delta
	if lo < 2 {
		lo = 2
	}
	hi := current + delta
	if hi > totalPages-1 {
		hi = totalPages - 1
	}
	for i := lo; i <= hi; i++ {
		window = append(window, i)
	}

	if current+delta < totalPages-1 {
		window = append(window, Ellipsis)
	}
	return append(window, totalPages)
}
