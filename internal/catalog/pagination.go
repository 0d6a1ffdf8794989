package catalog

import "math"

// Calculate turns a 1-based page and a page size into an offset and limit.
// Oversized pages are capped so that from+limit never overflows.
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	if maxPage := (math.MaxInt-size)/size + 1; page > maxPage {
		page = maxPage
	}
	from = (page - 1) * size
	return from, size
}
