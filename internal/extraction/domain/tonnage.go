package extraction

import (
	"strconv"
	"strings"
)

const defaultGramsPerUnit = 1000

// GramsPerUnit resolves the per-unit fill weight in grams for a machine.
// The chain is priority ordered: each branch runs only while the weight is
// still unresolved, and numeric parse failures on the raw type value are
// swallowed (the substring side of the branch still applies).
func GramsPerUnit(machine MachineType, rawType string) int {
	text := strings.ToLower(string(machine))
	raw := strings.TrimSpace(rawType)

	grams := 0
	if strings.Contains(text, "gasti") {
		grams = 90
	}
	if grams == 0 && (strings.Contains(text, "200cc") || rawEquals(raw, 200)) {
		grams = 200
	}
	if grams == 0 && (strings.Contains(text, "125") || rawEquals(raw, 125)) {
		grams = 125
	}
	if grams == 0 && (strings.Contains(text, "1000cc") || strings.HasPrefix(raw, "1000")) {
		grams = 1000
	}
	if grams == 0 {
		grams = defaultGramsPerUnit
	}
	return grams
}

// Tons converts a packed-unit quantity into metric tons.
func Tons(packQty float64, gramsPerUnit int) float64 {
	return packQty * float64(gramsPerUnit) / 1_000_000
}

func rawEquals(raw string, want float64) bool {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false
	}
	return v == want
}
