// Package numfmt rounds, formats and parses the measurements shown on a
// diagram.
//
// Every displayed value goes through [Fmt2]: rounded half away from zero to
// two decimals and printed with exactly two fractional digits. Rounding
// works on the shortest decimal representation of the float, so a value
// typed as 2.005 rounds to 2.01 even though its binary approximation lies
// slightly below the tie.
//
// [Parse] is the inverse used for user-entered text. It accepts either "."
// or "," as the decimal separator and yields the [NaN] sentinel for empty or
// unparseable input. The layout engine must never receive NaN; callers
// check with [IsNaN] before building a spec.
package numfmt

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Precision is the number of fractional digits used for display.
const Precision = 2

var (
	hundred = big.NewRat(100, 1)
	half    = big.NewRat(1, 2)
)

// NaN returns the not-a-number sentinel produced by failed parses.
func NaN() float64 { return math.NaN() }

// IsNaN reports whether v is the not-a-number sentinel.
func IsNaN(v float64) bool { return math.IsNaN(v) }

// Round2 rounds x to two decimal places, ties away from zero.
// NaN and infinities are returned unchanged; the result is never -0.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(x, 'g', -1, 64))
	if !ok {
		return math.Round(x*100) / 100
	}
	neg := r.Sign() < 0
	r.Abs(r)
	r.Mul(r, hundred)
	r.Add(r, half)
	cents := new(big.Int).Quo(r.Num(), r.Denom())

	f, _ := new(big.Rat).SetFrac(cents, big.NewInt(100)).Float64()
	if f == 0 {
		return 0
	}
	if neg {
		f = -f
	}
	return f
}

// Fmt2 formats x rounded by [Round2] with exactly two fractional digits.
//
//	Fmt2(12.345) == "12.35"
//	Fmt2(12.3)   == "12.30"
func Fmt2(x float64) string {
	return strconv.FormatFloat(Round2(x), 'f', Precision, 64)
}

// Parse converts user-entered text to a float. Either "." or "," is
// accepted as the decimal separator; surrounding whitespace is ignored.
// Empty, malformed and non-finite input yields [NaN].
func Parse(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return NaN()
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return NaN()
	}
	return v
}
