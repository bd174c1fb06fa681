package extraction

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DowntimeEvent is one downtime-code occurrence for a shift. Durations for
// the same code within a sheet are summed into a single event.
type DowntimeEvent struct {
	Date            time.Time
	Machine         MachineType
	ErrorCode       string
	DurationMinutes float64
}

// DowntimeLayout fixes how the downtime block is located and which code
// columns belong to it.
type DowntimeLayout struct {
	MarkerPrefix string
	CodeMin      int
	CodeMax      int
}

// DefaultDowntimeLayout matches the daily shift workbook template: the
// block starts at the first row containing an "f12" header, and the code
// columns span f12 through f100.
func DefaultDowntimeLayout() DowntimeLayout {
	return DowntimeLayout{MarkerPrefix: "f12", CodeMin: 12, CodeMax: 100}
}

var codeColumnPattern = regexp.MustCompile(`^f(\d+)$`)

// DowntimeExtractor unpivots the wide per-code downtime block of a sheet.
type DowntimeExtractor struct {
	layout DowntimeLayout
}

// NewDowntimeExtractor constructs an extractor.
func NewDowntimeExtractor(layout DowntimeLayout) *DowntimeExtractor {
	if layout.MarkerPrefix == "" {
		layout = DefaultDowntimeLayout()
	}
	return &DowntimeExtractor{layout: layout}
}

// Extract returns one event per distinct error code, ordered by code.
// A sheet without a downtime section yields an empty result; that is not
// an error, some machines simply report no stoppages.
func (e *DowntimeExtractor) Extract(grid Grid, sheetName string, shiftDate time.Time) []DowntimeEvent {
	headerRow := e.findHeaderRow(grid)
	if headerRow < 0 {
		return nil
	}

	codeColumns := e.resolveCodeColumns(grid, headerRow)
	if len(codeColumns) == 0 {
		return nil
	}

	totals := make(map[int]float64)
	for row := headerRow + 1; row < grid.Rows(); row++ {
		for col, code := range codeColumns {
			minutes := grid.Cell(row, col).Numeric(0)
			if minutes <= 0 {
				continue
			}
			totals[code] += minutes
		}
	}

	codes := make([]int, 0, len(totals))
	for code := range totals {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	machine := ClassifyMachine(sheetName)
	events := make([]DowntimeEvent, 0, len(codes))
	for _, code := range codes {
		events = append(events, DowntimeEvent{
			Date:            shiftDate,
			Machine:         machine,
			ErrorCode:       strconv.Itoa(code),
			DurationMinutes: totals[code],
		})
	}
	return events
}

// findHeaderRow scans top to bottom for the first row containing a cell
// that starts with the marker prefix. The block position varies by sheet,
// so the offset cannot be fixed.
func (e *DowntimeExtractor) findHeaderRow(grid Grid) int {
	marker := strings.ToLower(e.layout.MarkerPrefix)
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < len(grid[row]); col++ {
			text := strings.ToLower(strings.TrimSpace(grid.Cell(row, col).String()))
			if strings.HasPrefix(text, marker) {
				return row
			}
		}
	}
	return -1
}

// resolveCodeColumns maps column index to numeric error code for headers
// shaped f<code> with the code inside the configured range. Columns whose
// suffix is not purely numeric are excluded.
func (e *DowntimeExtractor) resolveCodeColumns(grid Grid, headerRow int) map[int]int {
	columns := make(map[int]int)
	for col := 0; col < len(grid[headerRow]); col++ {
		name := strings.ToLower(strings.TrimSpace(grid.Cell(headerRow, col).String()))
		m := codeColumnPattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		code, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if code < e.layout.CodeMin || code > e.layout.CodeMax {
			continue
		}
		columns[col] = code
	}
	return columns
}
