package layout

import (
	"encoding/json"
	"math"
	"unicode/utf8"
)

// Kind tags the geometry variant stored in a [Primitive].
type Kind string

// Primitive kinds.
const (
	KindRect Kind = "rect" // axis-aligned rectangle: X, Y, W, H
	KindBand Kind = "band" // oriented rectangle between From and To, Thickness wide
	KindLine Kind = "line" // segment From→To, Thickness is the stroke width
	KindText Kind = "text" // Label drawn at (X, Y)
)

// Role names what a primitive depicts. Sinks map roles to paint.
type Role string

// Geometry roles.
const (
	RoleFrameTop    Role = "frame-top"
	RoleFrameBottom Role = "frame-bottom"
	RoleFrameLeft   Role = "frame-left"
	RoleFrameRight  Role = "frame-right"
	RolePanel       Role = "panel"
	RoleGap         Role = "gap"
	RoleBar         Role = "bar"
	RoleBracket     Role = "bracket"
	RoleProfile     Role = "profile"
	RoleOmega       Role = "omega"

	RoleTailBase     Role = "tail-base"
	RoleTailLower    Role = "tail-lower"
	RoleTailSupport  Role = "tail-support"
	RoleTailDiagonal Role = "tail-diagonal"
)

// Annotation roles.
const (
	RoleDimension Role = "dimension"
	RoleLabel     Role = "label"
	RoleTitle     Role = "title"
)

// IsFrame reports whether r is one of the four frame sides.
func (r Role) IsFrame() bool {
	switch r {
	case RoleFrameTop, RoleFrameBottom, RoleFrameLeft, RoleFrameRight:
		return true
	}
	return false
}

// IsTail reports whether r belongs to the tail categories.
func (r Role) IsTail() bool {
	switch r {
	case RoleTailBase, RoleTailLower, RoleTailSupport, RoleTailDiagonal:
		return true
	}
	return false
}

// Anchor is the horizontal text anchor.
type Anchor string

// Text anchors.
const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Point is a position in drawing units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Primitive is one positioned drawing element. All coordinates are drawing
// units with the origin at the module's top-left corner and Y pointing
// down.
type Primitive struct {
	Kind Kind `json:"kind"`
	Role Role `json:"role"`

	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	W float64 `json:"w,omitempty"`
	H float64 `json:"h,omitempty"`

	From      Point   `json:"from,omitzero"`
	To        Point   `json:"to,omitzero"`
	Thickness float64 `json:"thickness,omitempty"`

	Label    string  `json:"label,omitempty"`
	Anchor   Anchor  `json:"anchor,omitempty"`
	Rotate   float64 `json:"rotate,omitempty"` // degrees, clockwise
	FontSize float64 `json:"font_size,omitempty"`

	Dashed    bool    `json:"dashed,omitempty"`
	Arrows    bool    `json:"arrows,omitempty"`
	ArrowSize float64 `json:"arrow_size,omitempty"`
	Halo      bool    `json:"halo,omitempty"`
}

// Rect returns a rectangle primitive.
func Rect(role Role, x, y, w, h float64) Primitive {
	return Primitive{Kind: KindRect, Role: role, X: x, Y: y, W: w, H: h}
}

// Band returns an oriented band of the given thickness from a to b.
func Band(role Role, a, b Point, thickness float64) Primitive {
	return Primitive{Kind: KindBand, Role: role, From: a, To: b, Thickness: thickness}
}

// Line returns a line segment with the given stroke width.
func Line(role Role, a, b Point, width float64) Primitive {
	return Primitive{Kind: KindLine, Role: role, From: a, To: b, Thickness: width}
}

// Text returns a text primitive anchored at (x, y). Y is the vertical
// centre of the text.
func Text(role Role, x, y float64, s string, size float64) Primitive {
	return Primitive{Kind: KindText, Role: role, X: x, Y: y, Label: s, FontSize: size, Anchor: AnchorStart}
}

// Corners returns the four corners of a band in drawing order. For other
// kinds the rectangle corners are returned.
func (p Primitive) Corners() [4]Point {
	if p.Kind != KindBand && p.Kind != KindLine {
		return [4]Point{
			{p.X, p.Y}, {p.X + p.W, p.Y},
			{p.X + p.W, p.Y + p.H}, {p.X, p.Y + p.H},
		}
	}
	dx, dy := p.To.X-p.From.X, p.To.Y-p.From.Y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return [4]Point{p.From, p.From, p.To, p.To}
	}
	ox, oy := -dy/n*p.Thickness/2, dx/n*p.Thickness/2
	return [4]Point{
		{p.From.X + ox, p.From.Y + oy},
		{p.To.X + ox, p.To.Y + oy},
		{p.To.X - ox, p.To.Y - oy},
		{p.From.X - ox, p.From.Y - oy},
	}
}

// textWidthRatio approximates the advance of an average glyph relative to
// the font size; good enough for sizing the canvas.
const textWidthRatio = 0.6

// Bounds returns the axis-aligned bounding box of p.
func (p Primitive) Bounds() Box {
	switch p.Kind {
	case KindText:
		w := float64(utf8.RuneCountInString(p.Label)) * p.FontSize * textWidthRatio
		h := p.FontSize
		if p.Rotate != 0 {
			w, h = h, w
			return Box{p.X - w/2, p.Y - h/2, p.X + w/2, p.Y + h/2}
		}
		x0 := p.X
		switch p.Anchor {
		case AnchorMiddle:
			x0 -= w / 2
		case AnchorEnd:
			x0 -= w
		}
		return Box{x0, p.Y - h/2, x0 + w, p.Y + h/2}
	default:
		b := EmptyBox()
		for _, c := range p.Corners() {
			b = b.AddPoint(c)
		}
		return b
	}
}

// Box is an axis-aligned bounding box.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyBox returns a box that contains nothing; adding any point to it
// yields a degenerate box at that point.
func EmptyBox() Box {
	return Box{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
}

// Empty reports whether b contains no points.
func (b Box) Empty() bool { return b.MinX > b.MaxX || b.MinY > b.MaxY }

// Width returns the horizontal extent, 0 for an empty box.
func (b Box) Width() float64 {
	if b.Empty() {
		return 0
	}
	return b.MaxX - b.MinX
}

// Height returns the vertical extent, 0 for an empty box.
func (b Box) Height() float64 {
	if b.Empty() {
		return 0
	}
	return b.MaxY - b.MinY
}

// AddPoint grows b to include pt.
func (b Box) AddPoint(pt Point) Box {
	return Box{
		MinX: min(b.MinX, pt.X), MinY: min(b.MinY, pt.Y),
		MaxX: max(b.MaxX, pt.X), MaxY: max(b.MaxY, pt.Y),
	}
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	if o.Empty() {
		return b
	}
	if b.Empty() {
		return o
	}
	return Box{
		MinX: min(b.MinX, o.MinX), MinY: min(b.MinY, o.MinY),
		MaxX: max(b.MaxX, o.MaxX), MaxY: max(b.MaxY, o.MaxY),
	}
}

// Pad returns b grown by d on every side.
func (b Box) Pad(d float64) Box {
	if b.Empty() {
		return b
	}
	return Box{b.MinX - d, b.MinY - d, b.MaxX + d, b.MaxY + d}
}

type boxJSON struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// MarshalJSON encodes an empty box as null.
func (b Box) MarshalJSON() ([]byte, error) {
	if b.Empty() {
		return []byte("null"), nil
	}
	return json.Marshal(boxJSON{b.MinX, b.MinY, b.MaxX, b.MaxY})
}

// UnmarshalJSON decodes null as [EmptyBox].
func (b *Box) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = EmptyBox()
		return nil
	}
	var v boxJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = Box{v.MinX, v.MinY, v.MaxX, v.MaxY}
	return nil
}

// BoundsOf returns the bounding box of all primitives.
func BoundsOf(prims []Primitive) Box {
	b := EmptyBox()
	for _, p := range prims {
		b = b.Union(p.Bounds())
	}
	return b
}
