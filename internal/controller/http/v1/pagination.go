package v1

import (
	"net/http"
	"strconv"
)

// parsePagination reads page/limit query parameters. Values that are
// absent or not numbers fall back to the defaults; range clamping happens
// in the row pager.
func parsePagination(r *http.Request) (page, limit int) {
	page = 1

	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			page = parsed
		}
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	return page, limit
}
