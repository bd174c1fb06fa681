package extraction

import "strings"

// MachineType tags a filling line by its machine family.
type MachineType string

const (
	MachineGasti   MachineType = "GASTI"
	Machine200cc   MachineType = "200cc"
	Machine125     MachineType = "125"
	Machine1000cc  MachineType = "1000cc"
	MachineUnknown MachineType = "Unknown"
)

// machineRules are evaluated in order, first match wins. The order matters:
// the patterns overlap (e.g. "1000" also contains "100"), so this must stay
// an ordered chain, not a lookup table.
var machineRules = []struct {
	match  func(string) bool
	result MachineType
}{
	{func(s string) bool { return strings.Contains(s, "gasti") }, MachineGasti},
	{func(s string) bool { return strings.Contains(s, "200cc") || s == "200" }, Machine200cc},
	{func(s string) bool { return strings.Contains(s, "125") || s == "125" }, Machine125},
	{func(s string) bool { return strings.Contains(s, "1000cc") || s == "1000" }, Machine1000cc},
}

// ClassifyMachine maps a sheet or file name to a machine type by
// case-insensitive substring rules.
func ClassifyMachine(text string) MachineType {
	s := strings.ToLower(strings.TrimSpace(text))
	for _, rule := range machineRules {
		if rule.match(s) {
			return rule.result
		}
	}
	return MachineUnknown
}
