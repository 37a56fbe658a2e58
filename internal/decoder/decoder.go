package decoder

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/kurochkinivan/excel_analytics/internal/domain"
	"github.com/xuri/excelize/v2"
)

// AllowedExtensions is the fixed upload allow-list, checked by filename
// suffix before any decode is attempted.
var AllowedExtensions = []string{".xlsx", ".xls", ".csv"}

func Allowed(filename string) bool {
	return slices.Contains(AllowedExtensions, strings.ToLower(filepath.Ext(filename)))
}

// Decoder converts a stored workbook/CSV file into an ordered sequence of
// row records plus the derived column-name list. For multi-sheet workbooks
// only the first sheet is read.
type Decoder struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Decoder {
	return &Decoder{log: log}
}

// Decode returns the data rows and the columns derived from the keys of
// the first row. Zero data rows means zero columns.
func (d *Decoder) Decode(path string) ([]domain.Row, []string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return d.decodeCSV(path)
	case ".xlsx", ".xls":
		return d.decodeWorkbook(path)
	default:
		return nil, nil, fmt.Errorf("%w: unsupported extension %q", domain.ErrDecodeFailed, ext)
	}
}

func (d *Decoder) decodeCSV(path string) (_ []domain.Row, _ []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
		}

		records = append(records, record)
	}

	return d.tabulate(records)
}

func (d *Decoder) decodeWorkbook(path string) (_ []domain.Row, _ []string, err error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}
	defer func() { err = errors.Join(err, wb.Close()) }()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, nil
	}

	records, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}

	return d.tabulate(records)
}

// tabulate zips the header row with each data row. Duplicate header names
// keep their first position; later cells overwrite earlier values.
func (d *Decoder) tabulate(records [][]string) ([]domain.Row, []string, error) {
	if len(records) < 2 {
		d.log.Debug("file has no data rows", slog.Int("record_count", len(records)))
		return nil, nil, nil
	}

	header := records[0]

	columns := make([]string, 0, len(header))
	for _, name := range header {
		if !slices.Contains(columns, name) {
			columns = append(columns, name)
		}
	}

	rows := make([]domain.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(domain.Row, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = parseCell(record[i])
			} else {
				row[name] = domain.EmptyValue()
			}
		}

		rows = append(rows, row)
	}

	d.log.Debug("decoded tabular file",
		slog.Int("row_count", len(rows)),
		slog.Int("column_count", len(columns)),
	)

	return rows, columns, nil
}

func parseCell(cell string) domain.Value {
	trimmed := strings.TrimSpace(cell)

	if trimmed == "" {
		return domain.EmptyValue()
	}

	// ParseFloat accepts "NaN" and "Inf"; those cells stay strings.
	if num, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(num) && !math.IsInf(num, 0) {
		return domain.NumberValue(num)
	}

	if strings.EqualFold(trimmed, "true") || strings.EqualFold(trimmed, "false") {
		return domain.BoolValue(strings.EqualFold(trimmed, "true"))
	}

	return domain.StringValue(cell)
}
