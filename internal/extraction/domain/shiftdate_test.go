package extraction

import (
	"testing"
	"time"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestResolveShiftDate(t *testing.T) {
	clock := fixedClock{now: time.Date(2025, 7, 1, 15, 30, 0, 0, time.UTC)}
	today := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		file string
		want time.Time
	}{
		{"shift_21062025.xlsx", time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)},
		{"01012024 report.xlsx", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"no date here.xlsx", today},
		{"99999999.xlsx", today},      // month out of range
		{"21131999.xlsx", today},      // month 13, year below window
		{"31022025.xlsx", today},      // 31 February does not exist
		{"shift-2106-2025.xlsx", today}, // digits not contiguous
	}
	for _, tc := range cases {
		if got := ResolveShiftDate(tc.file, clock); !got.Equal(tc.want) {
			t.Fatalf("resolve %q: got %v want %v", tc.file, got, tc.want)
		}
	}
}

func TestResolveShiftDateNilClock(t *testing.T) {
	got := ResolveShiftDate("nodate.xlsx", nil)
	if got.IsZero() {
		t.Fatal("expected a non-zero default date")
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("expected midnight-truncated date, got %v", got)
	}
}
