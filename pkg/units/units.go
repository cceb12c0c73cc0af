// Package units converts linear measurements between the units a spec file
// may be written in.
//
// Every conversion goes through millimetres: the layout engine always works
// in mm, spec files may use mm, cm or inches, and labels are converted back
// to the file's unit for display.
package units

import (
	"sort"
	"strings"

	"github.com/matzehuels/fencedraw/pkg/errors"
)

// Unit is a linear measurement unit.
type Unit string

// Supported units.
const (
	MM   Unit = "mm"
	CM   Unit = "cm"
	Inch Unit = "in"
)

// Default is the unit assumed when a spec file does not declare one.
const Default = MM

// mmPer holds the number of millimetres in one unit.
var mmPer = map[Unit]float64{
	MM:   1,
	CM:   10,
	Inch: 25.4,
}

var aliases = map[string]Unit{
	"mm":          MM,
	"millimeter":  MM,
	"millimetre":  MM,
	"cm":          CM,
	"centimeter":  CM,
	"centimetre":  CM,
	"in":          Inch,
	"inch":        Inch,
	"inches":      Inch,
	"\"":          Inch,
	"millimeters": MM,
	"centimeters": CM,
}

// Parse resolves a unit name (case-insensitive, common aliases accepted).
// An empty string yields [Default].
func Parse(s string) (Unit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Default, nil
	}
	if u, ok := aliases[s]; ok {
		return u, nil
	}
	return "", errors.New(errors.ErrCodeInvalidUnit, "unknown unit %q (must be one of: %s)", s, strings.Join(Names(), ", "))
}

// Names returns the canonical unit names in sorted order.
func Names() []string {
	names := make([]string, 0, len(mmPer))
	for u := range mmPer {
		names = append(names, string(u))
	}
	sort.Strings(names)
	return names
}

// Valid reports whether u is a supported unit.
func (u Unit) Valid() bool {
	_, ok := mmPer[u]
	return ok
}

// String returns the unit symbol.
func (u Unit) String() string { return string(u) }

// factor returns the mm-per-unit factor, treating unknown units as mm so
// that conversion never panics on a value that skipped Parse.
func (u Unit) factor() float64 {
	if f, ok := mmPer[u]; ok {
		return f
	}
	return 1
}

// ToMM converts v from unit u to millimetres.
func ToMM(v float64, u Unit) float64 { return v * u.factor() }

// FromMM converts v millimetres to unit u.
func FromMM(v float64, u Unit) float64 { return v / u.factor() }

// Convert converts v from one unit to another.
func Convert(v float64, from, to Unit) float64 {
	if from == to {
		return v
	}
	return FromMM(ToMM(v, from), to)
}
