package service_test

import (
	"testing"

	"github.com/kurochkinivan/excel_analytics/internal/domain"
	"github.com/kurochkinivan/excel_analytics/internal/service"
	"github.com/stretchr/testify/assert"
)

func makeRows(n int) []domain.Row {
	rows := make([]domain.Row, n)
	for i := range rows {
		rows[i] = domain.Row{"n": domain.NumberValue(float64(i))}
	}

	return rows
}

func TestPageRows(t *testing.T) {
	t.Parallel()

	rows := makeRows(250)

	tests := []struct {
		name      string
		page      int
		limit     int
		wantLen   int
		wantPage  int
		wantLimit int
	}{
		{name: "first full page", page: 1, limit: 100, wantLen: 100, wantPage: 1, wantLimit: 100},
		{name: "last partial page", page: 3, limit: 100, wantLen: 50, wantPage: 3, wantLimit: 100},
		{name: "out of range page is empty", page: 5, limit: 100, wantLen: 0, wantPage: 5, wantLimit: 100},
		{name: "zero limit means default", page: 1, limit: 0, wantLen: 100, wantPage: 1, wantLimit: 100},
		{name: "negative limit clamps to one", page: 1, limit: -7, wantLen: 1, wantPage: 1, wantLimit: 1},
		{name: "oversized limit clamps to max", page: 1, limit: 5000, wantLen: 250, wantPage: 1, wantLimit: 1000},
		{name: "zero page clamps to one", page: 0, limit: 100, wantLen: 100, wantPage: 1, wantLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := service.PageRows(rows, tt.page, tt.limit)

			assert.Len(t, got.Rows, tt.wantLen)
			assert.Equal(t, 250, got.Total)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestPageRows_PreservesOrder(t *testing.T) {
	t.Parallel()

	got := service.PageRows(makeRows(250), 2, 100)

	assert.Equal(t, domain.NumberValue(100), got.Rows[0]["n"])
	assert.Equal(t, domain.NumberValue(199), got.Rows[99]["n"])
}

func TestPageRows_EmptyDataset(t *testing.T) {
	t.Parallel()

	got := service.PageRows(nil, 1, 100)

	assert.Empty(t, got.Rows)
	assert.Zero(t, got.Total)
}
