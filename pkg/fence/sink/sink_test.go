package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/fencedraw/pkg/errors"
	"github.com/matzehuels/fencedraw/pkg/fence"
	"github.com/matzehuels/fencedraw/pkg/fence/layout"
	"github.com/matzehuels/fencedraw/pkg/fence/styles"
)

func sampleDiagram() layout.Diagram {
	return layout.Build(fence.Spec{
		OuterW: 600, OuterH: 900, WithFrame: true, FrameThickness: 20, Scale: 0.5,
		Panels:       []float64{400, 400},
		Gaps:         []float64{10, 20, 10},
		VerticalBars: []float64{300},
		Profile:      &fence.Profile{Height: 30},
		Omega:        &fence.Omega{Height: 40, ExtendRight: 100},
		Tail:         &fence.Tail{Enabled: true, BaseLabel: "base <1>"},
	})
}

func TestRenderSVG(t *testing.T) {
	d := sampleDiagram()
	svg := string(RenderSVG(d))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Fatalf("missing svg root: %.80s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg not closed")
	}
	for _, want := range []string{
		`class="panel"`,
		`class="frame-top"`,
		`class="gap"`,
		`stroke-dasharray="6 4"`,
		`class="tail-diagonal" points=`,
		`vector-effect="non-scaling-stroke"`,
		`class="arrow"`,
		`paint-order="stroke"`,
		`transform="rotate(-90`,
		`base &lt;1&gt;`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}

	if got, want := strings.Count(svg, "<text "), countKind(d, layout.KindText); got != want {
		t.Errorf("text elements = %d, want %d", got, want)
	}
}

func TestRenderSVGTheme(t *testing.T) {
	th := styles.DefaultTheme()
	th.Panel = "rebeccapurple"
	svg := string(RenderSVG(sampleDiagram(), WithTheme(th)))
	if !strings.Contains(svg, `class="panel" x=`) || !strings.Contains(svg, `fill="#663399"`) {
		t.Error("panel fill not taken from theme")
	}
}

func TestRenderSVGViewBox(t *testing.T) {
	d := layout.Diagram{
		Primitives: []layout.Primitive{layout.Rect(layout.RolePanel, -10, 0, 20, 10)},
		Bounds:     layout.Box{MinX: -10, MinY: 0, MaxX: 10, MaxY: 10},
	}
	svg := string(RenderSVG(d, WithMargin(5)))
	if !strings.Contains(svg, `viewBox="-15.00 -5.00 30.00 20.00"`) {
		t.Errorf("unexpected viewBox: %.120s", svg)
	}
}

func countKind(d layout.Diagram, k layout.Kind) int {
	n := 0
	for _, p := range d.Primitives {
		if p.Kind == k {
			n++
		}
	}
	return n
}

func TestRenderPNG(t *testing.T) {
	d := sampleDiagram()
	data, err := RenderPNG(d, WithPixelScale(2))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}

	v := newRenderer().viewport(d)
	wantW := int(math.Ceil(v.width() * 2))
	wantH := int(math.Ceil(v.height() * 2))
	if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("image size = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestRenderPNGTooLarge(t *testing.T) {
	huge := layout.Build(fence.Spec{
		OuterW: 1e7, OuterH: 1e7, WithFrame: true, FrameThickness: 40, Scale: 1,
		Panels: []float64{1e7 - 80},
		Gaps:   []float64{0, 0},
	})
	if _, err := RenderPNG(huge); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RenderPNG(huge) error = %v, want INVALID_INPUT", err)
	}

	// A small diagram is rejected at an extreme pixel scale.
	if _, err := RenderPNG(sampleDiagram(), WithPixelScale(1000)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RenderPNG(pixel scale 1000) error = %v, want INVALID_INPUT", err)
	}
}

func TestCheckPNGSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"small", 800, 600, false},
		{"max side", MaxPNGSide, 100, false},
		{"too wide", MaxPNGSide + 1, 100, true},
		{"too many pixels", MaxPNGSide, MaxPNGSide, true},
		{"at pixel limit", 8192, 8192, false},
		{"infinite", math.Inf(1), 10, true},
		{"nan", math.NaN(), 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := checkPNGSize(tt.w, tt.h); (err != nil) != tt.wantErr {
				t.Errorf("checkPNGSize(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(sampleDiagram())
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(len(data), 8)])
	}
}

func TestRenderJSON(t *testing.T) {
	d := sampleDiagram()
	data, err := RenderJSON(d, WithJSONUnit("mm"), WithJSONTitle("Gate"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Unit != "mm" || out.Title != "Gate" {
		t.Errorf("unit/title = %q/%q", out.Unit, out.Title)
	}
	if out.Scale != 0.5 {
		t.Errorf("Scale = %v, want 0.5", out.Scale)
	}
	if out.TotalHeight != 970 {
		t.Errorf("TotalHeight = %v, want 970", out.TotalHeight)
	}
	if len(out.Primitives) != len(d.Primitives) {
		t.Errorf("Primitives count = %d, want %d", len(out.Primitives), len(d.Primitives))
	}
	if out.Bounds.Width != d.Bounds.Width() {
		t.Errorf("Bounds.Width = %v, want %v", out.Bounds.Width, d.Bounds.Width())
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(layout.Diagram{Bounds: layout.EmptyBox()})
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !strings.Contains(string(data), `"primitives": []`) {
		t.Errorf("empty diagram should export an empty primitive list: %s", data)
	}
}

func TestArrowHead(t *testing.T) {
	head := arrowHead(layout.Point{X: 10, Y: 0}, layout.Point{X: 0, Y: 0}, 4)
	want := [3]layout.Point{{X: 10, Y: 0}, {X: 6, Y: 2}, {X: 6, Y: -2}}
	if head != want {
		t.Errorf("arrowHead() = %v, want %v", head, want)
	}
}
