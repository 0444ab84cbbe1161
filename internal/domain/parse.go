package domain

import (
	"strconv"
	"strings"
)

// sidraSentinels are SIDRA's markers for unavailable series points.
var sidraSentinels = map[string]struct{}{
	"...": {}, "-": {}, "X": {}, "..": {},
}

// nassSentinels are QuickStats' markers for withheld or negligible values.
var nassSentinels = map[string]struct{}{
	"(D)": {}, "(Z)": {}, "(NA)": {}, "(S)": {}, "(H)": {}, "(L)": {},
}

// ParseSIDRAValue parses a SIDRA series value, returning 0 for sentinels,
// empty strings, and anything unparseable.
func ParseSIDRAValue(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if _, ok := sidraSentinels[s]; ok {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseNASSValue parses a QuickStats Value field, stripping thousands
// separators and returning 0 for sentinels and anything unparseable.
func ParseNASSValue(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if _, ok := nassSentinels[s]; ok {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}
