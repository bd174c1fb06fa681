package extraction

import (
	"strconv"
	"strings"
	"time"
)

// CellKind identifies how a cell value was encoded in the source sheet.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
	CellTime
	CellDateTime
)

// Cell is a single untyped spreadsheet value.
type Cell struct {
	Kind CellKind
	Text string
	Num  float64
	TS   time.Time
}

// EmptyCell returns a cell with no value.
func EmptyCell() Cell { return Cell{Kind: CellEmpty} }

// StringCell returns a string-valued cell.
func StringCell(text string) Cell { return Cell{Kind: CellString, Text: text} }

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Num: v} }

// TimeCell returns a time-of-day cell.
func TimeCell(ts time.Time) Cell { return Cell{Kind: CellTime, TS: ts} }

// DateTimeCell returns a date-time cell.
func DateTimeCell(ts time.Time) Cell { return Cell{Kind: CellDateTime, TS: ts} }

// String renders the cell for header matching and free-text fields.
func (c Cell) String() string {
	switch c.Kind {
	case CellString:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellTime:
		return c.TS.Format("15:04:05")
	case CellDateTime:
		return c.TS.Format("2006-01-02 15:04:05")
	}
	return ""
}

// Numeric coerces the cell to a number, returning fallback when it cannot.
func (c Cell) Numeric(fallback float64) float64 {
	switch c.Kind {
	case CellNumber:
		return c.Num
	case CellString:
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
		if err != nil {
			return fallback
		}
		return v
	}
	return fallback
}

// Grid is an untyped rectangular sheet region addressed by zero-based
// (row, column). Rows may be ragged; out-of-range reads yield empty cells.
type Grid [][]Cell

// Cell returns the cell at (row, col), or an empty cell when out of range.
func (g Grid) Cell(row, col int) Cell {
	if row < 0 || row >= len(g) {
		return EmptyCell()
	}
	if col < 0 || col >= len(g[row]) {
		return EmptyCell()
	}
	return g[row][col]
}

// Rows reports the number of rows in the grid.
func (g Grid) Rows() int { return len(g) }

// Cols reports the widest row in the grid.
func (g Grid) Cols() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// SheetGrid pairs a sheet name with its materialized grid.
type SheetGrid struct {
	Name string
	Grid Grid
}

// Clock provides time for domain services.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

// Now returns current time.
func (SystemClock) Now() time.Time { return time.Now() }
