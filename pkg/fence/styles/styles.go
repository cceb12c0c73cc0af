// Package styles maps primitive roles to paint.
//
// A [Theme] holds one CSS colour per element family. Stroke colours are
// derived from fills by lowering their HSL lightness, so a theme only
// needs fills. Any CSS colour syntax is accepted: named colours, #rgb,
// #rrggbb, rgb(), hsl().
package styles

import (
	"image/color"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"github.com/matzehuels/fencedraw/pkg/errors"
	"github.com/matzehuels/fencedraw/pkg/fence/layout"
)

// Theme holds the base colours of a diagram.
type Theme struct {
	Background string `json:"background" toml:"background"`
	Frame      string `json:"frame" toml:"frame"`
	Panel      string `json:"panel" toml:"panel"`
	Gap        string `json:"gap" toml:"gap"`
	Bar        string `json:"bar" toml:"bar"`
	Bracket    string `json:"bracket" toml:"bracket"`
	Profile    string `json:"profile" toml:"profile"`
	Omega      string `json:"omega" toml:"omega"`
	Tail       string `json:"tail" toml:"tail"`
	Dimension  string `json:"dimension" toml:"dimension"`
	Text       string `json:"text" toml:"text"`
	Halo       string `json:"halo" toml:"halo"`
}

// DefaultTheme returns the stock technical-drawing palette.
func DefaultTheme() Theme {
	return Theme{
		Background: "#ffffff",
		Frame:      "#5b6770",
		Panel:      "#c9d6df",
		Gap:        "#ffffff",
		Bar:        "#7d8b95",
		Bracket:    "#8c6d46",
		Profile:    "#a3b18a",
		Omega:      "#6c8ebf",
		Tail:       "#b85450",
		Dimension:  "#222222",
		Text:       "#111111",
		Halo:       "#ffffff",
	}
}

// fields lists the theme keys in a fixed order.
func (t *Theme) fields() []struct {
	key string
	v   *string
} {
	return []struct {
		key string
		v   *string
	}{
		{"background", &t.Background},
		{"frame", &t.Frame},
		{"panel", &t.Panel},
		{"gap", &t.Gap},
		{"bar", &t.Bar},
		{"bracket", &t.Bracket},
		{"profile", &t.Profile},
		{"omega", &t.Omega},
		{"tail", &t.Tail},
		{"dimension", &t.Dimension},
		{"text", &t.Text},
		{"halo", &t.Halo},
	}
}

// Keys returns the theme keys accepted by [ParseTheme].
func Keys() []string {
	var t Theme
	var keys []string
	for _, f := range t.fields() {
		keys = append(keys, f.key)
	}
	sort.Strings(keys)
	return keys
}

// ParseTheme overlays the colours in m onto the default theme. Keys are
// case-insensitive; unknown keys and unparsable colours are errors.
func ParseTheme(m map[string]string) (Theme, error) {
	t := DefaultTheme()
	byKey := map[string]*string{}
	for _, f := range t.fields() {
		byKey[f.key] = f.v
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := strings.TrimSpace(m[k])
		dst, ok := byKey[strings.ToLower(strings.TrimSpace(k))]
		if !ok {
			return Theme{}, errors.New(errors.ErrCodeInvalidTheme,
				"unknown theme key %q (valid: %s)", k, strings.Join(Keys(), ", "))
		}
		if _, err := csscolorparser.Parse(v); err != nil {
			return Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "theme %s: invalid colour %q", k, v)
		}
		*dst = v
	}
	return t, nil
}

// Validate reports the first colour in t that does not parse.
func (t Theme) Validate() error {
	for _, f := range t.fields() {
		if _, err := csscolorparser.Parse(*f.v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTheme, err, "theme %s: invalid colour %q", f.key, *f.v)
		}
	}
	return nil
}

// Paint is the resolved appearance of one primitive.
type Paint struct {
	Fill   string // hex colour, or "" for no fill
	Stroke string // hex colour, or "" for no stroke
	Dashed bool
}

// Paint returns the fill and stroke for role. Text roles get only a fill.
func (t Theme) Paint(role layout.Role) Paint {
	fill := t.fill(role)
	switch role {
	case layout.RoleDimension:
		return Paint{Stroke: Hex(t.Dimension), Fill: Hex(t.Dimension)}
	case layout.RoleLabel, layout.RoleTitle:
		return Paint{Fill: Hex(t.Text)}
	case layout.RoleGap:
		return Paint{Fill: Hex(fill), Stroke: Darken(t.Frame), Dashed: true}
	}
	return Paint{Fill: Hex(fill), Stroke: Darken(fill)}
}

func (t Theme) fill(role layout.Role) string {
	switch {
	case role.IsFrame():
		return t.Frame
	case role.IsTail():
		return t.Tail
	}
	switch role {
	case layout.RolePanel:
		return t.Panel
	case layout.RoleGap:
		return t.Gap
	case layout.RoleBar:
		return t.Bar
	case layout.RoleBracket:
		return t.Bracket
	case layout.RoleProfile:
		return t.Profile
	case layout.RoleOmega:
		return t.Omega
	}
	return t.Text
}

// fallback is used for colours that fail to parse after validation was
// skipped.
const fallback = "#000000"

// Hex normalises a CSS colour to #rrggbb.
func Hex(s string) string {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return fallback
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// Darken lowers the HSL lightness of a CSS colour by 0.1 and returns it as
// #rrggbb.
func Darken(s string) string {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return fallback
	}
	h, sat, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	return colorful.Hsl(h, sat, l-.1).Clamped().Hex()
}

// RGBA converts a CSS colour to an opaque-aware [color.RGBA].
func RGBA(s string) color.RGBA {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: uint8(c.A*255 + 0.5)}
}
