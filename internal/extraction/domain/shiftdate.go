package extraction

import (
	"regexp"
	"strconv"
	"time"
)

var shiftDatePattern = regexp.MustCompile(`\d{8}`)

const (
	shiftDateMinYear = 2000
	shiftDateMaxYear = 2100
)

// ResolveShiftDate extracts an 8-digit ddmmyyyy stamp from a workbook file
// name. When no stamp is present or a component is out of range, today's
// date is the safe default: uploads are normally same-day.
func ResolveShiftDate(fileName string, clock Clock) time.Time {
	if clock == nil {
		clock = SystemClock{}
	}
	today := truncateToDay(clock.Now())

	stamp := shiftDatePattern.FindString(fileName)
	if stamp == "" {
		return today
	}
	day, _ := strconv.Atoi(stamp[0:2])
	month, _ := strconv.Atoi(stamp[2:4])
	year, _ := strconv.Atoi(stamp[4:8])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return today
	}
	if year < shiftDateMinYear || year > shiftDateMaxYear {
		return today
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) {
		// time.Date normalizes impossible dates like 31 February.
		return today
	}
	return date
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
