package layout

import "github.com/matzehuels/fencedraw/pkg/fence"

// Diagram is the complete, ordered primitive list for one spec.
type Diagram struct {
	Primitives []Primitive `json:"primitives"`
	Bounds     Box         `json:"bounds"`

	// TotalHeight is the model-unit height of module plus attachments.
	TotalHeight float64 `json:"total_height"`
	// Scale is the drawing units per model unit the diagram was built at.
	Scale float64 `json:"scale"`
	// Warnings lists non-fatal problems noticed while building.
	Warnings []string `json:"warnings,omitempty"`
}

// Option configures [Build].
type Option func(*builder)

type builder struct {
	annotations AnnotationConfig
	tail        TailGenerator
	noAnnotate  bool
}

// WithAnnotations sets the caption offsets, display unit and title.
func WithAnnotations(cfg AnnotationConfig) Option {
	return func(b *builder) { b.annotations = cfg }
}

// WithTailGenerator overrides the generator chosen from the tail mode.
func WithTailGenerator(g TailGenerator) Option {
	return func(b *builder) { b.tail = g }
}

// WithoutAnnotations skips captions, dimension lines and the title.
func WithoutAnnotations() Option {
	return func(b *builder) { b.noAnnotate = true }
}

// Build lays out the whole diagram: inner stack, frame, attachments, tail
// and annotations, in that order.
func Build(s fence.Spec, opts ...Option) Diagram {
	b := builder{annotations: DefaultAnnotationConfig()}
	for _, opt := range opts {
		opt(&b)
	}
	if b.tail == nil {
		b.tail = TailFor(s.Tail.ModeOrDefault())
	}

	st := FrameAndStack(s)
	at := Attachments(s)
	tl := b.tail.Generate(s)

	n := len(st.Inner) + len(st.Frame) + len(at.Primitives) + len(tl.Primitives)
	prims := make([]Primitive, 0, n+len(st.Marks)+len(at.Marks)+len(tl.Marks)+5)
	prims = append(prims, st.Inner...)
	prims = append(prims, st.Frame...)
	prims = append(prims, at.Primitives...)
	prims = append(prims, tl.Primitives...)

	if !b.noAnnotate {
		marks := make([]Mark, 0, len(st.Marks)+len(at.Marks)+len(tl.Marks))
		marks = append(marks, st.Marks...)
		marks = append(marks, at.Marks...)
		marks = append(marks, tl.Marks...)
		prims = append(prims, Annotate(s, prims, marks, b.annotations)...)
	}

	var warnings []string
	if s.Tail != nil && s.Tail.Enabled && !s.TailActive() {
		warnings = append(warnings, "tail enabled without an omega; tail not drawn")
	}
	if chk := fence.CheckStack(s); !chk.Balanced() {
		warnings = append(warnings, chk.Err().Error())
	}

	return Diagram{
		Primitives:  prims,
		Bounds:      BoundsOf(prims),
		TotalHeight: s.TotalHeight(),
		Scale:       s.Scale,
		Warnings:    warnings,
	}
}
