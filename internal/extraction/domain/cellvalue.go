package extraction

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ToDecimalHours converts a cell into a decimal time-of-day in hours.
// The function is total: anything it cannot interpret yields 0.
//
// Interpretation order: empty, clock value, Excel day fraction (numbers in
// [0,1) scale by 24), packed "HHMM" integer, raw decimal hours.
func ToDecimalHours(c Cell) float64 {
	switch c.Kind {
	case CellEmpty:
		return 0
	case CellTime, CellDateTime:
		return clockToHours(c.TS)
	case CellNumber:
		return numberToHours(c.Num)
	case CellString:
		return stringToValue(c.Text, clockToHours, numberToHours)
	}
	return 0
}

// ToDurationMinutes converts a cell into a duration in minutes, mirroring
// the branch order of ToDecimalHours. The terminal numeric fallback reads
// the value as hours and scales by 60, unlike the time-of-day variant;
// the source sheets encode the two fields differently.
func ToDurationMinutes(c Cell) float64 {
	switch c.Kind {
	case CellEmpty:
		return 0
	case CellTime, CellDateTime:
		return clockToMinutes(c.TS)
	case CellNumber:
		return numberToMinutes(c.Num)
	case CellString:
		return stringToValue(c.Text, clockToMinutes, numberToMinutes)
	}
	return 0
}

func clockToHours(ts time.Time) float64 {
	return float64(ts.Hour()) + float64(ts.Minute())/60 + float64(ts.Second())/3600
}

func clockToMinutes(ts time.Time) float64 {
	return clockToHours(ts) * 60
}

func numberToHours(v float64) float64 {
	if v >= 0 && v < 1 {
		return v * 24
	}
	h, m, ok := splitHHMM(v)
	if !ok {
		return v
	}
	return h + m/60
}

func numberToMinutes(v float64) float64 {
	if v >= 0 && v < 1 {
		return v * 24 * 60
	}
	h, m, ok := splitHHMM(v)
	if !ok {
		return v * 60
	}
	return h*60 + m
}

// splitHHMM reads v as a packed HHMM integer. Only integral values qualify,
// and the minute part must land in [0,60); otherwise the value is not a
// packed clock reading.
func splitHHMM(v float64) (hours, minutes float64, ok bool) {
	if v != math.Trunc(v) {
		return 0, 0, false
	}
	m := math.Mod(v, 100)
	if m < 0 || m >= 60 {
		return 0, 0, false
	}
	h := math.Mod(math.Floor(v/100), 24)
	return h, m, true
}

// stringToValue parses a textual cell: clock formats first, then any value
// that reads as a number goes through the numeric rules.
func stringToValue(s string, clock func(time.Time) float64, numeric func(float64) float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return clock(ts)
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return numeric(v)
}
