package sink

import (
	"math"

	"github.com/matzehuels/fencedraw/pkg/fence/layout"
	"github.com/matzehuels/fencedraw/pkg/fence/styles"
)

const (
	// DefaultMargin is the blank border around the diagram bounds.
	DefaultMargin = 24.0
	// DefaultPixelScale is the PNG pixels per drawing unit.
	DefaultPixelScale = 1.0

	// MaxPNGSide is the largest PNG width or height, in pixels.
	MaxPNGSide = 16384
	// MaxPNGPixels bounds the PNG canvas area (256 MiB of RGBA).
	MaxPNGPixels = 64 << 20

	strokeWidth = 1.0
	haloPad     = 2.0
	dashOn      = 6.0
	dashOff     = 4.0
	minArrow    = 4.0
)

// Option configures the SVG, PNG and PDF sinks.
type Option func(*renderer)

type renderer struct {
	theme      styles.Theme
	margin     float64
	pixelScale float64
}

// WithTheme sets the colour theme.
func WithTheme(t styles.Theme) Option { return func(r *renderer) { r.theme = t } }

// WithMargin sets the border around the diagram, in drawing units.
func WithMargin(m float64) Option {
	return func(r *renderer) {
		if m >= 0 {
			r.margin = m
		}
	}
}

// WithPixelScale sets PNG pixels per drawing unit (2 for high-DPI output).
// Other sinks ignore it.
func WithPixelScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.pixelScale = s
		}
	}
}

func newRenderer(opts ...Option) renderer {
	r := renderer{
		theme:      styles.DefaultTheme(),
		margin:     DefaultMargin,
		pixelScale: DefaultPixelScale,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// viewport maps drawing units onto a surface whose origin is the top-left
// corner of the padded diagram bounds.
type viewport struct {
	box layout.Box
}

func (r renderer) viewport(d layout.Diagram) viewport {
	b := d.Bounds
	if b.Empty() {
		b = layout.BoundsOf(d.Primitives)
	}
	if b.Empty() {
		b = layout.Box{MaxX: 1, MaxY: 1}
	}
	return viewport{box: b.Pad(r.margin)}
}

func (v viewport) width() float64  { return v.box.Width() }
func (v viewport) height() float64 { return v.box.Height() }

func (v viewport) pt(p layout.Point) layout.Point {
	return layout.Point{X: p.X - v.box.MinX, Y: p.Y - v.box.MinY}
}

// arrowHeads returns the two filled triangles terminating a dimension line.
func arrowHeads(p layout.Primitive) [2][3]layout.Point {
	size := max(p.ArrowSize, minArrow)
	return [2][3]layout.Point{
		arrowHead(p.From, p.To, size),
		arrowHead(p.To, p.From, size),
	}
}

// arrowHead returns a triangle with its tip at tip, pointing away from
// tail.
func arrowHead(tip, tail layout.Point, size float64) [3]layout.Point {
	dx, dy := tip.X-tail.X, tip.Y-tail.Y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return [3]layout.Point{tip, tip, tip}
	}
	ux, uy := dx/n, dy/n
	bx, by := tip.X-ux*size, tip.Y-uy*size
	w := size / 2
	return [3]layout.Point{
		tip,
		{X: bx - uy*w, Y: by + ux*w},
		{X: bx + uy*w, Y: by - ux*w},
	}
}

// textBox returns the halo rectangle behind a text primitive.
func textBox(p layout.Primitive) layout.Box {
	return p.Bounds().Pad(haloPad)
}
