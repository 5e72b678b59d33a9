package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/einhellcentralasia/public-price-stock/internal/table"
)

// ErrTableNotFound is returned when no sheet carries the named table.
var ErrTableNotFound = errors.New("named table not found in workbook")

// ReadTable parses a downloaded .xlsx and extracts the named table. This is
// the fallback path for when the Graph workbook API cannot serve the table
// directly; the result has the same shape as the API read.
func ReadTable(data []byte, tableName string) (*table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		tables, err := f.GetTables(sheet)
		if err != nil {
			slog.Debug("failed to list tables on sheet",
				slog.String("sheet", sheet),
				slog.String("error", err.Error()))
			continue
		}

		for _, t := range tables {
			if !strings.EqualFold(t.Name, tableName) {
				continue
			}

			slog.Info("Found table in downloaded workbook",
				slog.String("sheet", sheet),
				slog.String("table", t.Name),
				slog.String("range", t.Range))

			return extractRange(f, sheet, t.Range)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableName)
}

// extractRange cuts the table range out of the sheet. The first row of the
// range is the header row. Rows from excelize omit trailing empty cells, so
// every row is padded back to the table width.
func extractRange(f *excelize.File, sheet, rangeRef string) (*table.Table, error) {
	parts := strings.Split(rangeRef, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid table range %q", rangeRef)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid table range %q: %w", rangeRef, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid table range %q: %w", rangeRef, err)
	}

	sheetRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(sheetRows) < startRow {
		return nil, fmt.Errorf("table range %q starts beyond sheet data", rangeRef)
	}

	width := endCol - startCol + 1
	cut := func(row []string) []string {
		out := make([]string, width)
		for i := 0; i < width; i++ {
			idx := startCol - 1 + i
			if idx < len(row) {
				out[i] = strings.TrimSpace(row[idx])
			}
		}
		return out
	}

	headers := cut(sheetRows[startRow-1])

	var rows [][]string
	for r := startRow; r < endRow && r < len(sheetRows); r++ {
		rows = append(rows, cut(sheetRows[r]))
	}

	return table.New(headers, rows)
}
