// Package measure derives room dimensions from measurement input.
package measure

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Area returns the floor area in square meters for a room of the given
// length and width, rounded to two decimals. Height never takes part.
func Area(length, width float64) float64 {
	return round2(length * width)
}

// AreaFromInput computes the area from raw form values. It reports false when
// either value is empty or not a number, so nothing is shown instead of a
// value computed from defaults.
func AreaFromInput(length, width string) (float64, bool) {
	l, ok := ParseMeters(length)
	if !ok {
		return 0, false
	}
	w, ok := ParseMeters(width)
	if !ok {
		return 0, false
	}
	return Area(l, w), true
}

// ParseMeters parses a length typed by a user. Both "3.5" and "3,5" are accepted.
func ParseMeters(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// RoomName trims a room name and capitalizes it the way the presets are written
func RoomName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return cases.Title(language.Russian, cases.NoLower).String(s)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
