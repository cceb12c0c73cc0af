package sink

import (
	"bytes"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/matzehuels/fencedraw/pkg/errors"
	"github.com/matzehuels/fencedraw/pkg/fence/layout"
	"github.com/matzehuels/fencedraw/pkg/fence/styles"
	"github.com/matzehuels/fencedraw/pkg/fonts"
)

type fontSet struct {
	regular, bold *text.FontSource
}

var (
	fontOnce sync.Once
	fontSrc  fontSet
	fontErr  error
)

func loadFonts() (fontSet, error) {
	fontOnce.Do(func() {
		if fontSrc.regular, fontErr = text.NewFontSource(fonts.RegularTTF()); fontErr != nil {
			return
		}
		fontSrc.bold, fontErr = text.NewFontSource(fonts.BoldTTF())
	})
	return fontSrc, fontErr
}

// RenderPNG rasterises the diagram. The image is the padded diagram bounds
// times the pixel scale, rounded up to whole pixels.
//
// The rasteriser draws text without the current transform, so rotated
// captions are drawn level at their anchor.
func RenderPNG(d layout.Diagram, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	v := r.viewport(d)
	k := r.pixelScale

	fw, fh := math.Ceil(v.width()*k), math.Ceil(v.height()*k)
	if err := checkPNGSize(fw, fh); err != nil {
		return nil, err
	}

	src, err := loadFonts()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "load font")
	}

	dc := gg.NewContext(max(int(fw), 1), max(int(fh), 1))
	defer dc.Close()

	dc.ClearWithColor(gg.FromColor(styles.RGBA(r.theme.Background)))

	p := pngPainter{dc: dc, v: v, k: k, src: src, theme: r.theme}
	for _, prim := range d.Primitives {
		if err := p.draw(prim); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "draw %s", prim.Role)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

// checkPNGSize rejects canvases larger than [MaxPNGSide] per side or
// [MaxPNGPixels] in total, including non-finite sizes.
func checkPNGSize(w, h float64) error {
	if !(w <= MaxPNGSide && h <= MaxPNGSide) || w*h > MaxPNGPixels {
		return errors.New(errors.ErrCodeInvalidInput,
			"png would be %.0f × %.0f pixels (max %d per side, %d in total); lower the scale or pixel scale",
			w, h, MaxPNGSide, MaxPNGPixels)
	}
	return nil
}

type pngPainter struct {
	dc    *gg.Context
	v     viewport
	k     float64
	src   fontSet
	theme styles.Theme
}

func (p pngPainter) xy(pt layout.Point) (float64, float64) {
	q := p.v.pt(pt)
	return q.X * p.k, q.Y * p.k
}

func (p pngPainter) polygon(pts []layout.Point) {
	for i, pt := range pts {
		x, y := p.xy(pt)
		if i == 0 {
			p.dc.MoveTo(x, y)
		} else {
			p.dc.LineTo(x, y)
		}
	}
	p.dc.ClosePath()
}

func (p pngPainter) shape(pts []layout.Point, paint styles.Paint, dashed bool) error {
	if paint.Fill != "" {
		p.polygon(pts)
		p.dc.SetColor(styles.RGBA(paint.Fill))
		if err := p.dc.Fill(); err != nil {
			return err
		}
	}
	if paint.Stroke == "" {
		return nil
	}
	p.polygon(pts)
	p.dc.SetColor(styles.RGBA(paint.Stroke))
	p.dc.SetLineWidth(strokeWidth * p.k)
	if dashed || paint.Dashed {
		p.dc.SetDash(dashOn*p.k, dashOff*p.k)
		defer p.dc.ClearDash()
	}
	return p.dc.Stroke()
}

func (p pngPainter) draw(prim layout.Primitive) error {
	paint := p.theme.Paint(prim.Role)
	switch prim.Kind {
	case layout.KindRect, layout.KindBand:
		c := prim.Corners()
		return p.shape(c[:], paint, prim.Dashed)
	case layout.KindLine:
		x1, y1 := p.xy(prim.From)
		x2, y2 := p.xy(prim.To)
		p.dc.SetColor(styles.RGBA(paint.Stroke))
		p.dc.SetLineWidth(max(prim.Thickness, strokeWidth) * p.k)
		p.dc.DrawLine(x1, y1, x2, y2)
		if err := p.dc.Stroke(); err != nil {
			return err
		}
		if !prim.Arrows {
			return nil
		}
		for _, head := range arrowHeads(prim) {
			p.polygon(head[:])
			if err := p.dc.Fill(); err != nil {
				return err
			}
		}
		return nil
	case layout.KindText:
		return p.text(prim, paint)
	}
	return nil
}

func (p pngPainter) text(prim layout.Primitive, paint styles.Paint) error {
	level := prim
	level.Rotate = 0
	if prim.Halo {
		b := textBox(level)
		x0, y0 := p.xy(layout.Point{X: b.MinX, Y: b.MinY})
		p.dc.DrawRectangle(x0, y0, b.Width()*p.k, b.Height()*p.k)
		p.dc.SetColor(styles.RGBA(p.theme.Halo))
		if err := p.dc.Fill(); err != nil {
			return err
		}
	}
	ax := 0.0
	switch prim.Anchor {
	case layout.AnchorMiddle:
		ax = 0.5
	case layout.AnchorEnd:
		ax = 1
	}
	x, y := p.xy(layout.Point{X: prim.X, Y: prim.Y})
	face := p.src.regular
	if prim.Role == layout.RoleTitle {
		face = p.src.bold
	}
	p.dc.SetFont(face.Face(prim.FontSize * p.k))
	p.dc.SetColor(styles.RGBA(paint.Fill))
	p.dc.DrawStringAnchored(prim.Label, x, y, ax, 0.5)
	return nil
}
