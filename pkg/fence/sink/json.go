package sink

import (
	"encoding/json"

	"github.com/matzehuels/fencedraw/pkg/fence/layout"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	unit  string
	title string
}

// WithJSONUnit records the display unit used for captions.
func WithJSONUnit(u string) JSONOption { return func(r *jsonRenderer) { r.unit = u } }

// WithJSONTitle records the diagram title.
func WithJSONTitle(t string) JSONOption { return func(r *jsonRenderer) { r.title = t } }

type jsonOutput struct {
	Title       string             `json:"title,omitempty"`
	Unit        string             `json:"unit,omitempty"`
	Scale       float64            `json:"scale"`
	TotalHeight float64            `json:"total_height"`
	Bounds      jsonBounds         `json:"bounds"`
	Warnings    []string           `json:"warnings,omitempty"`
	Primitives  []layout.Primitive `json:"primitives"`
}

type jsonBounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RenderJSON exports the diagram as a pretty-printed JSON document:
// bounds, total model height and the ordered primitive list in drawing
// units. It does not modify d and is safe to call concurrently.
func RenderJSON(d layout.Diagram, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Title:       r.title,
		Unit:        r.unit,
		Scale:       d.Scale,
		TotalHeight: d.TotalHeight,
		Warnings:    d.Warnings,
		Primitives:  d.Primitives,
	}
	if !d.Bounds.Empty() {
		out.Bounds = jsonBounds{
			X: d.Bounds.MinX, Y: d.Bounds.MinY,
			Width: d.Bounds.Width(), Height: d.Bounds.Height(),
		}
	}
	if out.Primitives == nil {
		out.Primitives = []layout.Primitive{}
	}
	return json.MarshalIndent(out, "", "  ")
}
