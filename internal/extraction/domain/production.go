package extraction

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Layout fixes where the production block sits inside a sheet.
type Layout struct {
	HeaderRowUpper int
	HeaderRowLower int
	DataStartRow   int
	DataRows       int
	DataCols       int
}

// DefaultLayout matches the daily shift workbook template.
func DefaultLayout() Layout {
	return Layout{
		HeaderRowUpper: 1,
		HeaderRowLower: 2,
		DataStartRow:   3,
		DataRows:       6,
		DataCols:       13,
	}
}

// ProductionRecord is one production run within a shift. Records are built
// once at extraction time and never mutated.
type ProductionRecord struct {
	Date         time.Time
	Product      string
	NominalSpeed float64
	Manpower     float64
	StartTime    float64
	EndTime      float64
	Duration     float64
	PackQty      float64
	Waste        float64
	Machine      MachineType

	Ton                 float64
	PotentialProduction float64
	EfficiencyPct       float64
	TargetHour          float64
}

// Canonical production field names after header renaming.
const (
	fieldProduct  = "product"
	fieldSpeed    = "nominal_speed"
	fieldManpower = "manpower"
	fieldStart    = "start"
	fieldEnd      = "end"
	fieldPackQty  = "pack_qty"
	fieldWaste    = "waste"
)

// headerRenames maps the template's header spellings (lower-cased) to
// canonical fields. "quanity" is how the template actually spells it;
// the corrected spelling is accepted as well.
var headerRenames = map[string]string{
	"start":            fieldStart,
	"finish":           fieldEnd,
	"production title": fieldProduct,
	"cap":              fieldSpeed,
	"manpower":         fieldManpower,
	"quanity":          fieldPackQty,
	"quantity":         fieldPackQty,
	"waste":            fieldWaste,
}

var canonicalFields = []string{
	fieldProduct, fieldSpeed, fieldManpower, fieldStart, fieldEnd, fieldPackQty, fieldWaste,
}

// ProductionExtractor reads the fixed production block out of a sheet grid.
type ProductionExtractor struct {
	layout Layout
	diag   Diagnostics
}

// NewProductionExtractor constructs an extractor. A nil diagnostics sink
// discards warnings.
func NewProductionExtractor(layout Layout, diag Diagnostics) *ProductionExtractor {
	if layout.DataRows <= 0 || layout.DataCols <= 0 {
		layout = DefaultLayout()
	}
	if diag == nil {
		diag = NopDiagnostics{}
	}
	return &ProductionExtractor{layout: layout, diag: diag}
}

// Extract emits the sheet's production records in row order. Structural
// mismatches are sheet-scoped: they produce a warning and an empty result
// so the caller can skip the sheet and continue with the rest.
func (e *ProductionExtractor) Extract(grid Grid, sheetName, fileName string, shiftDate time.Time) []ProductionRecord {
	lay := e.layout

	if grid.Rows() < lay.DataStartRow+lay.DataRows {
		e.diag.Warnf("sheet %q: expected %d rows, got %d; skipping", sheetName, lay.DataStartRow+lay.DataRows, grid.Rows())
		return nil
	}
	if grid.Cols() < lay.DataCols {
		e.diag.Warnf("sheet %q: expected %d columns, got %d; skipping", sheetName, lay.DataCols, grid.Cols())
		return nil
	}

	columns := e.resolveColumns(grid, sheetName)

	machine := ClassifyMachine(sheetName)
	if machine == MachineUnknown {
		machine = ClassifyMachine(fileName)
	}

	records := make([]ProductionRecord, 0, lay.DataRows)
	for i := 0; i < lay.DataRows; i++ {
		row := lay.DataStartRow + i

		product := TitleCase(strings.TrimSpace(grid.Cell(row, columns[fieldProduct]).String()))
		if product == "" {
			continue
		}

		start := ToDecimalHours(grid.Cell(row, columns[fieldStart]))
		end := ToDecimalHours(grid.Cell(row, columns[fieldEnd]))
		adjustedEnd := end
		if adjustedEnd < start {
			// Overnight run crossed midnight.
			adjustedEnd += 24
		}
		duration := adjustedEnd - start
		if duration == 0 {
			continue
		}

		rec := ProductionRecord{
			Date:         shiftDate,
			Product:      product,
			NominalSpeed: grid.Cell(row, columns[fieldSpeed]).Numeric(0),
			Manpower:     grid.Cell(row, columns[fieldManpower]).Numeric(0),
			StartTime:    start,
			EndTime:      end,
			Duration:     duration,
			PackQty:      grid.Cell(row, columns[fieldPackQty]).Numeric(0),
			Waste:        grid.Cell(row, columns[fieldWaste]).Numeric(0),
			Machine:      machine,
		}

		rec.Ton = Tons(rec.PackQty, GramsPerUnit(machine, strings.TrimSpace(sheetName)))
		rec.PotentialProduction = rec.NominalSpeed * rec.Duration
		if rec.PotentialProduction > 0 {
			rec.EfficiencyPct = rec.PackQty / rec.PotentialProduction * 100
		}
		if rec.NominalSpeed > 0 {
			rec.TargetHour = rec.PackQty / rec.NominalSpeed
		}

		records = append(records, rec)
	}
	return records
}

// resolveColumns maps each canonical field to a column index. For each
// column the lower header row wins over the upper one; columns that match
// no canonical field pass through unused. Missing canonical fields map to
// column -1, which reads as an empty cell and backfills the default.
func (e *ProductionExtractor) resolveColumns(grid Grid, sheetName string) map[string]int {
	lay := e.layout

	columns := make(map[string]int, len(canonicalFields))
	for _, field := range canonicalFields {
		columns[field] = -1
	}
	for i := 0; i < lay.DataCols; i++ {
		name := strings.TrimSpace(grid.Cell(lay.HeaderRowLower, i).String())
		if name == "" {
			name = strings.TrimSpace(grid.Cell(lay.HeaderRowUpper, i).String())
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed_Col_%d", i)
		}
		field, ok := headerRenames[strings.ToLower(name)]
		if !ok {
			continue
		}
		if columns[field] == -1 {
			columns[field] = i
		}
	}
	for _, field := range canonicalFields {
		if columns[field] == -1 {
			e.diag.Warnf("sheet %q: column %q not found, using defaults", sheetName, field)
		}
	}
	return columns
}

// TitleCase upper-cases the first letter of every word and lower-cases the
// rest, matching how product names are normalized upstream.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			startOfWord = true
			b.WriteRune(r)
		case startOfWord:
			startOfWord = false
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
