package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/fencedraw/pkg/fence/layout"
	"github.com/matzehuels/fencedraw/pkg/fence/styles"
	"github.com/matzehuels/fencedraw/pkg/fonts"
)

// RenderSVG renders the diagram as a standalone SVG document.
func RenderSVG(d layout.Diagram, opts ...Option) []byte {
	r := newRenderer(opts...)
	v := r.viewport(d)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		v.box.MinX, v.box.MinY, v.width(), v.height(), v.width(), v.height())
	fmt.Fprintf(&buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		v.box.MinX, v.box.MinY, v.width(), v.height(), styles.Hex(r.theme.Background))

	for _, p := range d.Primitives {
		paint := r.theme.Paint(p.Role)
		switch p.Kind {
		case layout.KindRect:
			fmt.Fprintf(&buf, `  <rect class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f"%s/>`+"\n",
				p.Role, p.X, p.Y, p.W, p.H, shapeAttrs(paint, p.Dashed))
		case layout.KindBand:
			c := p.Corners()
			fmt.Fprintf(&buf, `  <polygon class="%s" points="%s"%s/>`+"\n",
				p.Role, points(c[:]), shapeAttrs(paint, p.Dashed))
		case layout.KindLine:
			renderSVGLine(&buf, p, paint)
		case layout.KindText:
			renderSVGText(&buf, p, paint, r.theme)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func shapeAttrs(p styles.Paint, dashed bool) string {
	var sb strings.Builder
	fill := p.Fill
	if fill == "" {
		fill = "none"
	}
	fmt.Fprintf(&sb, ` fill="%s"`, fill)
	if p.Stroke != "" {
		fmt.Fprintf(&sb, ` stroke="%s" stroke-width="%.1f" vector-effect="non-scaling-stroke"`, p.Stroke, strokeWidth)
	}
	if dashed || p.Dashed {
		fmt.Fprintf(&sb, ` stroke-dasharray="%.0f %.0f"`, dashOn, dashOff)
	}
	return sb.String()
}

func renderSVGLine(buf *bytes.Buffer, p layout.Primitive, paint styles.Paint) {
	w := p.Thickness
	if w <= 0 {
		w = strokeWidth
	}
	fmt.Fprintf(buf, `  <line class="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f" vector-effect="non-scaling-stroke"/>`+"\n",
		p.Role, p.From.X, p.From.Y, p.To.X, p.To.Y, paint.Stroke, w)
	if !p.Arrows {
		return
	}
	for _, head := range arrowHeads(p) {
		fmt.Fprintf(buf, `  <polygon class="arrow" points="%s" fill="%s"/>`+"\n", points(head[:]), paint.Stroke)
	}
}

func renderSVGText(buf *bytes.Buffer, p layout.Primitive, paint styles.Paint, th styles.Theme) {
	var transform string
	if p.Rotate != 0 {
		transform = fmt.Sprintf(` transform="rotate(%.0f %.2f %.2f)"`, p.Rotate, p.X, p.Y)
	}
	var halo string
	if p.Halo {
		halo = fmt.Sprintf(` stroke="%s" stroke-width="%.0f" paint-order="stroke" stroke-linejoin="round"`,
			styles.Hex(th.Halo), 2*haloPad)
	}
	weight := ""
	if p.Role == layout.RoleTitle {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(buf, `  <text class="%s" x="%.2f" y="%.2f" font-family="%s" font-size="%.1f"%s text-anchor="%s" dominant-baseline="central" fill="%s"%s%s>%s</text>`+"\n",
		p.Role, p.X, p.Y, fonts.SVGFamily, p.FontSize, weight, anchor(p.Anchor), paint.Fill, halo, transform, escapeXML(p.Label))
}

func anchor(a layout.Anchor) string {
	if a == "" {
		return string(layout.AnchorStart)
	}
	return string(a)
}

func points(pts []layout.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
