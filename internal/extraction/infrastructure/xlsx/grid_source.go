package xlsx

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	extraction "lineboard/internal/extraction/domain"
)

// GridSource decodes XLSX workbook bytes into per-sheet grids.
type GridSource struct{}

// NewGridSource constructs a GridSource.
func NewGridSource() *GridSource {
	return &GridSource{}
}

// Grids materializes every sheet of the workbook. Cell typing: empty cells
// stay empty, numeric cells keep their raw stored value, and numeric cells
// rendered with a clock format (the display text contains a colon) surface
// as time-of-day or date-time values via the Excel serial.
func (s *GridSource) Grids(data []byte) ([]extraction.SheetGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	out := make([]extraction.SheetGrid, 0, len(sheets))
	for _, name := range sheets {
		rawRows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
		displayRows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}

		grid := make(extraction.Grid, len(rawRows))
		for r, rawRow := range rawRows {
			row := make([]extraction.Cell, len(rawRow))
			for c, raw := range rawRow {
				display := ""
				if r < len(displayRows) && c < len(displayRows[r]) {
					display = displayRows[r][c]
				}
				row[c] = buildCell(raw, display)
			}
			grid[r] = row
		}
		out = append(out, extraction.SheetGrid{Name: name, Grid: grid})
	}
	return out, nil
}

func buildCell(raw, display string) extraction.Cell {
	if strings.TrimSpace(raw) == "" {
		return extraction.EmptyCell()
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return extraction.StringCell(raw)
	}
	if strings.Contains(display, ":") {
		ts, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			if serial < 1 {
				return extraction.TimeCell(ts)
			}
			return extraction.DateTimeCell(ts)
		}
	}
	return extraction.NumberCell(serial)
}
