package layout

// MarkKind says how an annotation caption is worded.
type MarkKind string

const (
	MarkPanel     MarkKind = "panel"
	MarkGap       MarkKind = "gap"
	MarkBottomGap MarkKind = "bottom-gap"
	MarkBrackets  MarkKind = "brackets"
	MarkProfile   MarkKind = "profile"
	MarkOmega     MarkKind = "omega"
	MarkTail      MarkKind = "tail"
)

// Mark is a caption request produced by a layout stage and resolved into a
// text primitive by [Annotate].
//
// Y is in drawing units. Value is in model units and is converted to the
// display unit when the caption is worded. Marks with Placed set carry
// their own X and anchor; the rest go to the label column.
type Mark struct {
	Kind   MarkKind
	Value  float64
	Text   string
	Y      float64
	X      float64
	Placed bool
	Anchor Anchor
}

// canvas collects primitives in model units and emits them scaled.
type canvas struct {
	scale float64
	prims []Primitive
	marks []Mark
}

func newCanvas(scale float64) *canvas {
	return &canvas{scale: scale}
}

func (c *canvas) rect(role Role, x, y, w, h float64) *Primitive {
	s := c.scale
	c.prims = append(c.prims, Rect(role, x*s, y*s, w*s, h*s))
	return &c.prims[len(c.prims)-1]
}

func (c *canvas) band(role Role, x1, y1, x2, y2, thickness float64) {
	s := c.scale
	c.prims = append(c.prims, Band(role, Point{x1 * s, y1 * s}, Point{x2 * s, y2 * s}, thickness*s))
}

// mark records a column caption centred at model height y.
func (c *canvas) mark(kind MarkKind, value, y float64) {
	c.marks = append(c.marks, Mark{Kind: kind, Value: value, Y: y * c.scale})
}

// place records a caption at model position (x, y) with its own anchor.
func (c *canvas) place(text string, x, y float64, anchor Anchor) {
	c.marks = append(c.marks, Mark{
		Kind: MarkTail, Text: text,
		X: x * c.scale, Y: y * c.scale,
		Placed: true, Anchor: anchor,
	})
}
