package layout

import (
	"github.com/matzehuels/fencedraw/pkg/fence"
	"github.com/matzehuels/fencedraw/pkg/numfmt"
	"github.com/matzehuels/fencedraw/pkg/units"
)

// AnnotationConfig holds the drawing-unit offsets and font sizes used for
// captions, dimension lines and the title. None of these scale with the
// model.
type AnnotationConfig struct {
	LabelColumn     float64 // gap between the module's right edge and the label column
	TailLabelGap    float64 // gap between the tail's outer end and its captions
	DimensionOffset float64 // distance of dimension lines from the geometry
	CaptionGap      float64 // distance of dimension captions from their line
	TitleOffset     float64 // distance of the title above the module top
	BottomGapShift  float64 // upward shift of the bottom-gap caption when attachments exist
	FontSize        float64
	TitleFontSize   float64
	ArrowSize       float64
	LineWidth       float64

	// Unit is the display unit for caption values. Geometry is always
	// millimetres.
	Unit units.Unit
	// Title replaces the default "W × H unit" title when set.
	Title string
}

// Annotation defaults.
const (
	DefaultLabelColumn     = 10.0
	DefaultTailLabelGap    = 6.0
	DefaultDimensionOffset = 24.0
	DefaultCaptionGap      = 6.0
	DefaultTitleOffset     = 56.0
	DefaultBottomGapShift  = 12.0
	DefaultFontSize        = 12.0
	DefaultTitleFontSize   = 16.0
	DefaultArrowSize       = 6.0
	DefaultLineWidth       = 1.0
)

// DefaultAnnotationConfig returns the standard offsets with millimetres as
// the display unit.
func DefaultAnnotationConfig() AnnotationConfig {
	return AnnotationConfig{
		LabelColumn:     DefaultLabelColumn,
		TailLabelGap:    DefaultTailLabelGap,
		DimensionOffset: DefaultDimensionOffset,
		CaptionGap:      DefaultCaptionGap,
		TitleOffset:     DefaultTitleOffset,
		BottomGapShift:  DefaultBottomGapShift,
		FontSize:        DefaultFontSize,
		TitleFontSize:   DefaultTitleFontSize,
		ArrowSize:       DefaultArrowSize,
		LineWidth:       DefaultLineWidth,
		Unit:            units.Default,
	}
}

// withDefaults fills zero fields from [DefaultAnnotationConfig].
func (c AnnotationConfig) withDefaults() AnnotationConfig {
	d := DefaultAnnotationConfig()
	or := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	or(&c.LabelColumn, d.LabelColumn)
	or(&c.TailLabelGap, d.TailLabelGap)
	or(&c.DimensionOffset, d.DimensionOffset)
	or(&c.CaptionGap, d.CaptionGap)
	or(&c.TitleOffset, d.TitleOffset)
	or(&c.BottomGapShift, d.BottomGapShift)
	or(&c.FontSize, d.FontSize)
	or(&c.TitleFontSize, d.TitleFontSize)
	or(&c.ArrowSize, d.ArrowSize)
	or(&c.LineWidth, d.LineWidth)
	if !c.Unit.Valid() {
		c.Unit = d.Unit
	}
	return c
}

// Caption returns the wording of a column mark in the display unit.
func (c AnnotationConfig) Caption(m Mark) string {
	if m.Text != "" {
		return m.Text
	}
	v := numfmt.Fmt2(units.FromMM(m.Value, c.Unit))
	switch m.Kind {
	case MarkGap, MarkBottomGap:
		return "gap " + v + " " + string(c.Unit)
	case MarkBrackets:
		return "A: " + v
	case MarkProfile:
		return "B: " + v
	case MarkOmega:
		return "Ω: " + v
	default:
		return v + " " + string(c.Unit)
	}
}

// DefaultTitle returns the title used when the config has none.
func (c AnnotationConfig) DefaultTitle(s fence.Spec) string {
	return "Module " + numfmt.Fmt2(units.FromMM(s.OuterW, c.Unit)) +
		" × " + numfmt.Fmt2(units.FromMM(s.OuterH, c.Unit)) + " " + string(c.Unit)
}

// Annotate resolves marks into captions and adds the width and total
// height dimension lines and the title. geometry is every primitive drawn
// so far; the height dimension is placed left of its leftmost point.
func Annotate(s fence.Spec, geometry []Primitive, marks []Mark, cfg AnnotationConfig) []Primitive {
	cfg = cfg.withDefaults()
	var out []Primitive

	column := s.OuterW*s.Scale + cfg.LabelColumn
	shift := s.HasAttachments()
	for _, m := range marks {
		x, y, anchor := column, m.Y, AnchorStart
		if m.Placed {
			x, anchor = m.X, m.Anchor
			if anchor == AnchorEnd {
				x -= cfg.TailLabelGap
			} else {
				x += cfg.TailLabelGap
			}
		}
		if m.Kind == MarkBottomGap && shift {
			y -= cfg.BottomGapShift
		}
		p := Text(RoleLabel, x, y, cfg.Caption(m), cfg.FontSize)
		p.Anchor = anchor
		p.Halo = true
		out = append(out, p)
	}

	w := s.OuterW * s.Scale
	total := s.TotalHeight() * s.Scale

	dimY := -cfg.DimensionOffset
	out = append(out, dimension(Point{0, dimY}, Point{w, dimY}, cfg))
	wc := Text(RoleDimension, w/2, dimY-cfg.CaptionGap-cfg.FontSize/2,
		numfmt.Fmt2(units.FromMM(s.OuterW, cfg.Unit)), cfg.FontSize)
	wc.Anchor = AnchorMiddle
	out = append(out, wc)

	left := min(0, -s.OmegaExtend(fence.SideLeft)*s.Scale)
	if b := BoundsOf(geometry); !b.Empty() {
		left = min(left, b.MinX)
	}
	dimX := left - cfg.DimensionOffset
	out = append(out, dimension(Point{dimX, 0}, Point{dimX, total}, cfg))
	hc := Text(RoleDimension, dimX-cfg.CaptionGap-cfg.FontSize/2, total/2,
		numfmt.Fmt2(units.FromMM(s.TotalHeight(), cfg.Unit)), cfg.FontSize)
	hc.Anchor = AnchorMiddle
	hc.Rotate = -90
	out = append(out, hc)

	title := cfg.Title
	if title == "" {
		title = cfg.DefaultTitle(s)
	}
	tp := Text(RoleTitle, w/2, -cfg.TitleOffset, title, cfg.TitleFontSize)
	tp.Anchor = AnchorMiddle
	out = append(out, tp)

	return out
}

func dimension(a, b Point, cfg AnnotationConfig) Primitive {
	p := Line(RoleDimension, a, b, cfg.LineWidth)
	p.Arrows = true
	p.ArrowSize = cfg.ArrowSize
	return p
}
