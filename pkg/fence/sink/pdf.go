package sink

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/fencedraw/pkg/errors"
	"github.com/matzehuels/fencedraw/pkg/fence/layout"
	"github.com/matzehuels/fencedraw/pkg/fence/styles"
	"github.com/matzehuels/fencedraw/pkg/fonts"
)

// RenderPDF renders the diagram on a single PDF page sized to the padded
// diagram bounds, one point per drawing unit.
func RenderPDF(d layout.Diagram, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	v := r.viewport(d)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: v.width(), Ht: v.height()},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8FontFromBytes(fonts.Family, "", fonts.RegularTTF())
	pdf.AddUTF8FontFromBytes(fonts.Family, "B", fonts.BoldTTF())
	pdf.AddPage()

	bg := styles.RGBA(r.theme.Background)
	pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	pdf.Rect(0, 0, v.width(), v.height(), "F")

	p := pdfPainter{pdf: pdf, v: v, theme: r.theme}
	for _, prim := range d.Primitives {
		p.draw(prim)
	}

	if pdf.Err() {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, pdf.Error(), "draw pdf")
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "write pdf")
	}
	return buf.Bytes(), nil
}

type pdfPainter struct {
	pdf   *gofpdf.Fpdf
	v     viewport
	theme styles.Theme
}

func (p pdfPainter) fill(hex string) {
	c := styles.RGBA(hex)
	p.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func (p pdfPainter) stroke(hex string) {
	c := styles.RGBA(hex)
	p.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func (p pdfPainter) points(pts []layout.Point) []gofpdf.PointType {
	out := make([]gofpdf.PointType, len(pts))
	for i, pt := range pts {
		q := p.v.pt(pt)
		out[i] = gofpdf.PointType{X: q.X, Y: q.Y}
	}
	return out
}

func (p pdfPainter) draw(prim layout.Primitive) {
	paint := p.theme.Paint(prim.Role)
	switch prim.Kind {
	case layout.KindRect, layout.KindBand:
		p.shape(prim.Corners(), paint, prim.Dashed)
	case layout.KindLine:
		a, b := p.v.pt(prim.From), p.v.pt(prim.To)
		p.stroke(paint.Stroke)
		p.pdf.SetLineWidth(max(prim.Thickness, strokeWidth))
		p.pdf.Line(a.X, a.Y, b.X, b.Y)
		if prim.Arrows {
			p.fill(paint.Stroke)
			for _, head := range arrowHeads(prim) {
				p.pdf.Polygon(p.points(head[:]), "F")
			}
		}
	case layout.KindText:
		p.text(prim, paint)
	}
}

func (p pdfPainter) shape(c [4]layout.Point, paint styles.Paint, dashed bool) {
	style := ""
	if paint.Fill != "" {
		p.fill(paint.Fill)
		style += "F"
	}
	if paint.Stroke != "" {
		p.stroke(paint.Stroke)
		p.pdf.SetLineWidth(strokeWidth)
		style += "D"
	}
	if style == "" {
		return
	}
	if dashed || paint.Dashed {
		p.pdf.SetDashPattern([]float64{dashOn, dashOff}, 0)
		defer p.pdf.SetDashPattern([]float64{}, 0)
	}
	p.pdf.Polygon(p.points(c[:]), style)
}

func (p pdfPainter) text(prim layout.Primitive, paint styles.Paint) {
	q := p.v.pt(layout.Point{X: prim.X, Y: prim.Y})
	rotated := prim.Rotate != 0
	if rotated {
		p.pdf.TransformBegin()
		// PDF angles run counter-clockwise, layout angles clockwise.
		p.pdf.TransformRotate(-prim.Rotate, q.X, q.Y)
	}

	style := ""
	if prim.Role == layout.RoleTitle {
		style = "B"
	}
	p.pdf.SetFont(fonts.Family, style, prim.FontSize)
	w := p.pdf.GetStringWidth(prim.Label)
	x := q.X
	switch prim.Anchor {
	case layout.AnchorMiddle:
		x -= w / 2
	case layout.AnchorEnd:
		x -= w
	}

	if prim.Halo {
		p.fill(p.theme.Halo)
		p.pdf.Rect(x-haloPad, q.Y-prim.FontSize/2-haloPad, w+2*haloPad, prim.FontSize+2*haloPad, "F")
	}
	c := styles.RGBA(paint.Fill)
	p.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	// Text is placed on its baseline; shift down to centre the x-height.
	p.pdf.Text(x, q.Y+prim.FontSize*0.35, prim.Label)

	if rotated {
		p.pdf.TransformEnd()
	}
}
