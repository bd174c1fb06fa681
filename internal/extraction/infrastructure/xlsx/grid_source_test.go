package xlsx

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	extraction "lineboard/internal/extraction/domain"
)

func buildWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := "GASTI Line"
	f.SetSheetName("Sheet1", sheet)

	headers := map[string]string{
		"A3": "Production Title",
		"B3": "Cap",
		"C3": "Manpower",
		"D3": "Start",
		"E3": "Finish",
		"F3": "Quanity",
		"G3": "Waste",
	}
	for cell, value := range headers {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			t.Fatalf("set header %s: %v", cell, err)
		}
	}

	_ = f.SetCellValue(sheet, "A4", "gasti a")
	_ = f.SetCellValue(sheet, "B4", 1000)
	_ = f.SetCellValue(sheet, "C4", 4)
	_ = f.SetCellValue(sheet, "F4", 5000)
	_ = f.SetCellValue(sheet, "G4", 50)

	// Start and finish stored as day fractions with a clock display format.
	clockFmt := "hh:mm"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &clockFmt})
	if err != nil {
		t.Fatalf("new style: %v", err)
	}
	// 0.25 and 0.75 are exact binary fractions, so the serial-to-clock
	// conversion cannot drift.
	_ = f.SetCellValue(sheet, "D4", 0.25)
	_ = f.SetCellValue(sheet, "E4", 0.75)
	if err := f.SetCellStyle(sheet, "D4", "E4", style); err != nil {
		t.Fatalf("set style: %v", err)
	}

	_ = f.SetCellValue(sheet, "A10", "F12")
	_ = f.SetCellValue(sheet, "B10", "F13")
	_ = f.SetCellValue(sheet, "A11", 0)
	_ = f.SetCellValue(sheet, "B11", 30)

	// Pad the block so the sheet satisfies the fixed 13-column layout.
	_ = f.SetCellValue(sheet, "M9", "-")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestGridSourceDecodesTypedCells(t *testing.T) {
	data := buildWorkbook(t)

	grids, err := NewGridSource().Grids(data)
	if err != nil {
		t.Fatalf("grids: %v", err)
	}
	if len(grids) != 1 {
		t.Fatalf("got %d sheets, want 1", len(grids))
	}
	sheet := grids[0]
	if sheet.Name != "GASTI Line" {
		t.Fatalf("sheet name: %q", sheet.Name)
	}

	header := sheet.Grid.Cell(2, 0)
	if header.Kind != extraction.CellString || header.Text != "Production Title" {
		t.Fatalf("header cell: %+v", header)
	}

	qty := sheet.Grid.Cell(3, 5)
	if qty.Kind != extraction.CellNumber || qty.Num != 5000 {
		t.Fatalf("quantity cell: %+v", qty)
	}

	start := sheet.Grid.Cell(3, 3)
	if start.Kind != extraction.CellTime {
		t.Fatalf("start cell kind: %+v", start)
	}
	if got := extraction.ToDecimalHours(start); math.Abs(got-6) > 1e-9 {
		t.Fatalf("start hours: got %v want 6", got)
	}
}

func TestGridSourceFeedsExtractors(t *testing.T) {
	data := buildWorkbook(t)
	grids, err := NewGridSource().Grids(data)
	if err != nil {
		t.Fatalf("grids: %v", err)
	}

	date := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)
	sheet := grids[0]

	producer := extraction.NewProductionExtractor(extraction.DefaultLayout(), nil)
	records := producer.Extract(sheet.Grid, sheet.Name, "shift_21062025.xlsx", date)
	if len(records) != 1 {
		t.Fatalf("got %d production records, want 1", len(records))
	}
	rec := records[0]
	if rec.Product != "Gasti A" {
		t.Fatalf("product: %q", rec.Product)
	}
	if math.Abs(rec.Duration-12) > 1e-9 {
		t.Fatalf("duration: got %v want 12", rec.Duration)
	}
	if math.Abs(rec.Ton-0.45) > 1e-9 {
		t.Fatalf("ton: got %v want 0.45", rec.Ton)
	}

	downtimer := extraction.NewDowntimeExtractor(extraction.DefaultDowntimeLayout())
	events := downtimer.Extract(sheet.Grid, sheet.Name, date)
	if len(events) != 1 {
		t.Fatalf("got %d downtime events, want 1", len(events))
	}
	if events[0].ErrorCode != "13" || events[0].DurationMinutes != 30 {
		t.Fatalf("event: %+v", events[0])
	}
}

func TestGridSourceRejectsGarbage(t *testing.T) {
	if _, err := NewGridSource().Grids([]byte("not a workbook")); err == nil {
		t.Fatal("expected an error")
	}
}
