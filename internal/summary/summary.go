// Package summary computes per-column descriptive statistics over a
// dataset's materialized rows.
package summary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kurochkinivan/excel_analytics/internal/domain"
)

const maxSampleValues = 5

const emptyDatasetMessage = "Dataset is empty or has no columns."

// Summarize renders a plain-text report: dataset header, then for each
// column the value/unique counts plus either numeric min/max/avg or up to
// five distinct sample values.
func Summarize(ds *domain.Dataset) string {
	if len(ds.Rows) == 0 || len(ds.Columns) == 0 {
		return emptyDatasetMessage
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Dataset Name: %s\n", ds.Name)
	fmt.Fprintf(&b, "Total Rows: %d\n", len(ds.Rows))
	fmt.Fprintf(&b, "Total Columns: %d\n", len(ds.Columns))
	b.WriteString("\n")

	for _, column := range ds.Columns {
		summarizeColumn(&b, ds.Rows, column)
	}

	return strings.TrimRight(b.String(), "\n")
}

func summarizeColumn(b *strings.Builder, rows []domain.Row, column string) {
	var (
		values  []domain.Value
		numeric []float64
		unique  []domain.Value
	)

	seen := make(map[domain.Value]struct{})

	for _, row := range rows {
		value, ok := row[column]
		if !ok || value.IsEmpty() {
			continue
		}

		values = append(values, value)

		if value.IsNumber() {
			numeric = append(numeric, value.Num)
		}

		if _, dup := seen[value]; !dup {
			seen[value] = struct{}{}
			unique = append(unique, value)
		}
	}

	fmt.Fprintf(b, "Column: %s\n", column)
	fmt.Fprintf(b, " - Total Values: %d\n", len(values))
	fmt.Fprintf(b, " - Unique Values: %d\n", len(unique))

	if len(numeric) > 0 {
		min, max, avg := stats(numeric)
		fmt.Fprintf(b, " - Min: %s, Max: %s, Avg: %.2f\n", formatNumber(min), formatNumber(max), avg)
	} else {
		samples := make([]string, 0, maxSampleValues)
		for _, value := range unique[:min(len(unique), maxSampleValues)] {
			samples = append(samples, value.String())
		}

		fmt.Fprintf(b, " - Sample Values: %s\n", strings.Join(samples, ", "))
	}

	b.WriteString("\n")
}

func stats(numeric []float64) (minVal, maxVal, avg float64) {
	minVal, maxVal = numeric[0], numeric[0]

	var sum float64
	for _, n := range numeric {
		minVal = min(minVal, n)
		maxVal = max(maxVal, n)
		sum += n
	}

	return minVal, maxVal, sum / float64(len(numeric))
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
