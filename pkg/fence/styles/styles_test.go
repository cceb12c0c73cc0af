package styles

import (
	"image/color"
	"testing"

	"github.com/matzehuels/fencedraw/pkg/errors"
	"github.com/matzehuels/fencedraw/pkg/fence/layout"
)

func TestDefaultThemeValid(t *testing.T) {
	if err := DefaultTheme().Validate(); err != nil {
		t.Fatalf("DefaultTheme().Validate() = %v", err)
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		name     string
		in       map[string]string
		wantErr  bool
		wantCode errors.Code
		check    func(Theme) bool
	}{
		{
			name:  "empty keeps defaults",
			in:    nil,
			check: func(th Theme) bool { return th == DefaultTheme() },
		},
		{
			name:  "named colour",
			in:    map[string]string{"panel": "steelblue"},
			check: func(th Theme) bool { return th.Panel == "steelblue" && th.Frame == DefaultTheme().Frame },
		},
		{
			name:  "key case and spacing",
			in:    map[string]string{" Omega ": " #abc "},
			check: func(th Theme) bool { return th.Omega == "#abc" },
		},
		{
			name:     "unknown key",
			in:       map[string]string{"roof": "red"},
			wantErr:  true,
			wantCode: errors.ErrCodeInvalidTheme,
		},
		{
			name:     "bad colour",
			in:       map[string]string{"frame": "not-a-colour"},
			wantErr:  true,
			wantCode: errors.ErrCodeInvalidTheme,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTheme(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTheme() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, tt.wantCode) {
					t.Errorf("error code = %s, want %s", errors.GetCode(err), tt.wantCode)
				}
				return
			}
			if !tt.check(got) {
				t.Errorf("ParseTheme() = %+v", got)
			}
		})
	}
}

func TestHex(t *testing.T) {
	tests := []struct{ in, want string }{
		{"#FFF", "#ffffff"},
		{"red", "#ff0000"},
		{"rgb(0, 128, 0)", "#008000"},
		{"garbage", fallback},
	}
	for _, tt := range tests {
		if got := Hex(tt.in); got != tt.want {
			t.Errorf("Hex(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDarken(t *testing.T) {
	if got := Darken("#ffffff"); got != "#e6e6e6" {
		t.Errorf("Darken(white) = %q, want #e6e6e6", got)
	}
	if got := Darken("#000000"); got != "#000000" {
		t.Errorf("Darken(black) = %q, want #000000", got)
	}
}

func TestRGBA(t *testing.T) {
	if got := RGBA("#ff8000"); got != (color.RGBA{R: 255, G: 128, B: 0, A: 255}) {
		t.Errorf("RGBA() = %v", got)
	}
	if got := RGBA("nope"); got != (color.RGBA{A: 255}) {
		t.Errorf("RGBA(invalid) = %v, want opaque black", got)
	}
}

func TestPaint(t *testing.T) {
	th := DefaultTheme()
	tests := []struct {
		role       layout.Role
		wantFill   string
		wantStroke bool
		wantDashed bool
	}{
		{layout.RoleFrameLeft, Hex(th.Frame), true, false},
		{layout.RolePanel, Hex(th.Panel), true, false},
		{layout.RoleGap, Hex(th.Gap), true, true},
		{layout.RoleTailDiagonal, Hex(th.Tail), true, false},
		{layout.RoleOmega, Hex(th.Omega), true, false},
		{layout.RoleLabel, Hex(th.Text), false, false},
		{layout.RoleTitle, Hex(th.Text), false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			p := th.Paint(tt.role)
			if p.Fill != tt.wantFill {
				t.Errorf("Fill = %q, want %q", p.Fill, tt.wantFill)
			}
			if (p.Stroke != "") != tt.wantStroke {
				t.Errorf("Stroke = %q, want stroke %v", p.Stroke, tt.wantStroke)
			}
			if p.Dashed != tt.wantDashed {
				t.Errorf("Dashed = %v, want %v", p.Dashed, tt.wantDashed)
			}
		})
	}
}
