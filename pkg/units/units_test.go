package units

import (
	"math"
	"testing"

	"github.com/matzehuels/fencedraw/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Unit
		wantErr bool
	}{
		{"", MM, false},
		{"mm", MM, false},
		{" CM ", CM, false},
		{"in", Inch, false},
		{"Inches", Inch, false},
		{"centimetre", CM, false},
		{"ft", "", true},
		{"m", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidUnit) {
					t.Errorf("Parse(%q) error code = %q, want %q", tt.input, errors.GetCode(err), errors.ErrCodeInvalidUnit)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestConversions(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		from Unit
		to   Unit
		want float64
	}{
		{"mm to mm", 12.5, MM, MM, 12.5},
		{"cm to mm", 12.5, CM, MM, 125},
		{"in to mm", 1, Inch, MM, 25.4},
		{"mm to in", 254, MM, Inch, 10},
		{"cm to in", 2.54, CM, Inch, 1},
		{"in to cm", 10, Inch, CM, 25.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Convert(tt.v, tt.from, tt.to); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Convert(%v, %s, %s) = %v, want %v", tt.v, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, u := range []Unit{MM, CM, Inch} {
		for _, v := range []float64{0, 1, 33.3, 1800, 0.001} {
			if got := FromMM(ToMM(v, u), u); math.Abs(got-v) > 1e-9 {
				t.Errorf("FromMM(ToMM(%v, %s)) = %v", v, u, got)
			}
		}
	}
}

func TestUnknownUnitActsAsMM(t *testing.T) {
	if got := ToMM(7, Unit("furlong")); got != 7 {
		t.Errorf("ToMM with unknown unit = %v, want 7", got)
	}
	if Unit("furlong").Valid() {
		t.Error("furlong should not be valid")
	}
}

func TestNames(t *testing.T) {
	got := Names()
	want := []string{"cm", "in", "mm"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
