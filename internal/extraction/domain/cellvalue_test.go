package extraction

import (
	"math"
	"testing"
	"time"
)

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestToDecimalHoursClockCell(t *testing.T) {
	ts := time.Date(2025, 6, 21, 7, 30, 36, 0, time.UTC)

	got := ToDecimalHours(TimeCell(ts))
	want := 7.0 + 30.0/60 + 36.0/3600
	if !closeTo(got, want) {
		t.Fatalf("time cell: got %v want %v", got, want)
	}

	if got := ToDecimalHours(DateTimeCell(ts)); !closeTo(got, want) {
		t.Fatalf("date-time cell: got %v want %v", got, want)
	}
}

func TestToDecimalHoursDayFraction(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.3125, 0.5, 0.999} {
		if got := ToDecimalHours(NumberCell(v)); !closeTo(got, v*24) {
			t.Fatalf("fraction %v: got %v want %v", v, got, v*24)
		}
		if got := ToDurationMinutes(NumberCell(v)); !closeTo(got, v*24*60) {
			t.Fatalf("fraction %v minutes: got %v want %v", v, got, v*24*60)
		}
	}
}

func TestToDecimalHoursPackedHHMM(t *testing.T) {
	cases := []struct {
		v    float64
		want float64
	}{
		{730, 7.5},
		{1030, 10.5},
		{2215, 22.25},
		{2400, 0},    // hour wraps mod 24
		{60, 60},     // minute part 60 is invalid -> raw decimal hours
		{175, 175},   // minute part 75 is invalid -> raw decimal hours
		{8.25, 8.25}, // fractional values are never packed clocks
		{7.5, 7.5},
	}
	for _, tc := range cases {
		if got := ToDecimalHours(NumberCell(tc.v)); !closeTo(got, tc.want) {
			t.Fatalf("packed %v: got %v want %v", tc.v, got, tc.want)
		}
	}
}

func TestToDecimalHoursStrings(t *testing.T) {
	cases := []struct {
		s    string
		want float64
	}{
		{"07:30", 7.5},
		{"07:30:36", 7.0 + 30.0/60 + 36.0/3600},
		{" 16:00 ", 16},
		{"0730", 7.5},
		{"0.5", 12}, // numeric strings follow the numeric rules
		{"8.25", 8.25},
		{"", 0},
		{"n/a", 0},
	}
	for _, tc := range cases {
		if got := ToDecimalHours(StringCell(tc.s)); !closeTo(got, tc.want) {
			t.Fatalf("string %q: got %v want %v", tc.s, got, tc.want)
		}
	}
}

func TestToDurationMinutesMirrorsBranches(t *testing.T) {
	// Packed HHMM reads as h*60+m.
	if got := ToDurationMinutes(NumberCell(130)); !closeTo(got, 90) {
		t.Fatalf("packed 130: got %v want 90", got)
	}
	if got := ToDurationMinutes(StringCell("130")); !closeTo(got, 90) {
		t.Fatalf("packed string 130: got %v want 90", got)
	}
	// Clock strings read in minutes.
	if got := ToDurationMinutes(StringCell("01:30")); !closeTo(got, 90) {
		t.Fatalf("clock 01:30: got %v want 90", got)
	}
	// The terminal fallback reads hours and scales by 60; the time-of-day
	// variant returns the raw value. The asymmetry is intentional.
	if got := ToDurationMinutes(NumberCell(175)); !closeTo(got, 175*60) {
		t.Fatalf("fallback 175: got %v want %v", got, 175.0*60)
	}
	if got := ToDecimalHours(NumberCell(175)); !closeTo(got, 175) {
		t.Fatalf("fallback 175 hours: got %v want 175", got)
	}
	// Fractional values >= 1 skip the packed-HHMM branch and hit the same
	// fallback pair.
	if got := ToDurationMinutes(NumberCell(8.25)); !closeTo(got, 495) {
		t.Fatalf("fallback 8.25 minutes: got %v want 495", got)
	}
	if got := ToDurationMinutes(StringCell("8.25")); !closeTo(got, 495) {
		t.Fatalf("fallback string 8.25 minutes: got %v want 495", got)
	}
	if got := ToDecimalHours(NumberCell(8.25)); !closeTo(got, 8.25) {
		t.Fatalf("fallback 8.25 hours: got %v want 8.25", got)
	}
}

func TestNormalizationIsTotal(t *testing.T) {
	cells := []Cell{
		EmptyCell(),
		StringCell("??"),
		StringCell("12:99"),
		StringCell("-"),
		{Kind: CellKind(99)},
	}
	for _, c := range cells {
		if got := ToDecimalHours(c); got != 0 {
			t.Fatalf("hours for %#v: got %v want 0", c, got)
		}
		if got := ToDurationMinutes(c); got != 0 {
			t.Fatalf("minutes for %#v: got %v want 0", c, got)
		}
	}
}
