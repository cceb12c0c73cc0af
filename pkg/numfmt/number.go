package numfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Number is a float that decodes from TOML or JSON numbers as well as from
// strings written with either decimal separator ("12,5"). Strings that do
// not parse decode to [NaN]; validation happens when the spec is resolved,
// where the offending field can be named.
type Number float64

// Float returns n as a float64.
func (n Number) Float() float64 { return float64(n) }

// IsNaN reports whether n holds the not-a-number sentinel.
func (n Number) IsNaN() bool { return IsNaN(float64(n)) }

// String formats n with [Fmt2].
func (n Number) String() string { return Fmt2(float64(n)) }

// UnmarshalTOML implements the BurntSushi/toml Unmarshaler interface.
func (n *Number) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case int64:
		*n = Number(x)
	case float64:
		*n = Number(x)
	case string:
		*n = Number(Parse(x))
	default:
		return fmt.Errorf("expected number or numeric string, got %T", v)
	}
	return nil
}

// UnmarshalJSON accepts JSON numbers and numeric strings.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(Parse(s))
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("expected number or numeric string: %w", err)
	}
	*n = Number(v)
	return nil
}

// MarshalJSON writes n as a plain JSON number. NaN, which JSON cannot
// represent, is written as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if n.IsNaN() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(n), 'g', -1, 64)), nil
}

// Floats converts a slice of Numbers to float64s.
func Floats(ns []Number) []float64 {
	if ns == nil {
		return nil
	}
	out := make([]float64, len(ns))
	for i, n := range ns {
		out[i] = float64(n)
	}
	return out
}
