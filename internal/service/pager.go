package service

import "github.com/kurochkinivan/excel_analytics/internal/domain"

const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

type RowPage struct {
	Rows  []domain.Row `json:"rows"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// PageRows slices the row collection into one bounded page. Page numbers
// clamp to 1, the limit clamps to [1, MaxPageSize] with 0 meaning the
// default, out-of-range pages come back empty rather than failing.
func PageRows(rows []domain.Row, page, limit int) *RowPage {
	if page < 1 {
		page = 1
	}

	switch {
	case limit == 0:
		limit = DefaultPageSize
	case limit < 1:
		limit = 1
	case limit > MaxPageSize:
		limit = MaxPageSize
	}

	result := &RowPage{
		Rows:  []domain.Row{},
		Total: len(rows),
		Page:  page,
		Limit: limit,
	}

	start := (page - 1) * limit
	if start >= len(rows) {
		return result
	}

	result.Rows = rows[start:min(start+limit, len(rows))]

	return result
}
