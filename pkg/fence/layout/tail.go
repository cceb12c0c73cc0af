package layout

import "github.com/matzehuels/fencedraw/pkg/fence"

// TailGenerator produces the tail structure beside the omega. Generators
// emit only the tail-base, tail-lower, tail-support and tail-diagonal
// roles plus placed captions.
type TailGenerator interface {
	Generate(s fence.Spec) TailLayout
}

// TailLayout is the output of a [TailGenerator].
type TailLayout struct {
	Primitives []Primitive
	Marks      []Mark
}

// TailFor returns the generator for mode. Unknown modes fall back to
// [AutoTail].
func TailFor(mode fence.TailMode) TailGenerator {
	if mode == fence.TailManual {
		return ManualTail{}
	}
	return AutoTail{}
}

// AutoTail derives the tail from the module width and the omega
// extension on the tail side.
type AutoTail struct{}

// Generate implements [TailGenerator].
func (AutoTail) Generate(s fence.Spec) TailLayout {
	if !s.TailActive() {
		return TailLayout{}
	}
	side := s.Tail.SideOrDefault()
	base := max(fence.MinTailBaseLength, s.OuterW*s.Tail.BaseFraction())
	return tailPlan{
		base:       base,
		lower:      s.OmegaExtend(side) * s.Tail.LowerFraction(),
		diagStart:  base,
		targetFrac: s.Tail.DiagFraction(),
		support:    true,
	}.draw(s, side)
}

// ManualTail sizes the tail from fractions of the module height. It draws
// the two extension bands and the two diagonals but no vertical support.
type ManualTail struct{}

// Generate implements [TailGenerator].
func (ManualTail) Generate(s fence.Spec) TailLayout {
	if !s.TailActive() {
		return TailLayout{}
	}
	m := s.Tail.ManualOrDefault()
	base := s.OuterH * m.BaseFrac
	return tailPlan{
		base:       base,
		lower:      base * m.LowerFrac,
		diagStart:  base * m.DiagStartFrac,
		targetFrac: m.DiagTargetFrac,
	}.draw(s, s.Tail.SideOrDefault())
}

// tailPlan holds the model-unit lengths both generators agree on; the
// shared draw step turns them into primitives.
type tailPlan struct {
	base       float64 // base band length from the module edge
	lower      float64 // lower extension length from the module edge
	diagStart  float64 // primary diagonal start along the base
	targetFrac float64 // diagonal target as a fraction of the inner height
	support    bool    // draw the vertical support under the lower extension
}

func (p tailPlan) draw(s fence.Spec, side fence.Side) TailLayout {
	c := newCanvas(s.Scale)
	dir := side.Direction()
	t := s.FrameThickness

	edge, targetX, anchor := s.OuterW, s.OuterW-s.FrameT(), AnchorStart
	if side == fence.SideLeft {
		edge, targetX, anchor = 0, s.FrameT(), AnchorEnd
	}
	targetY := s.FrameT() + s.InnerHeight()*(1-p.targetFrac)

	omegaTop := s.OuterH + s.BracketsHeight() + s.ProfileHeight()
	omegaH := s.OmegaHeight()

	c.rect(RoleTailBase, span(edge, dir, p.base), omegaTop, p.base, omegaH)
	c.band(RoleTailDiagonal, edge+dir*p.diagStart, omegaTop, targetX, targetY, t)

	support := s.BracketsHeight()
	if support <= 0 {
		support = t
	}
	if p.lower > 0 {
		c.rect(RoleTailLower, span(edge, dir, p.lower), s.OuterH-t, p.lower, t)

		outer := edge + dir*p.lower
		if p.support {
			c.rect(RoleTailSupport, span(outer, -dir, t), s.OuterH, t, support)
		}
		c.band(RoleTailDiagonal, outer, s.OuterH-t, targetX, targetY, t*fence.SecondaryDiagonalWeight)
	}

	labelX := edge + dir*max(p.base, p.lower)
	if l := s.Tail.BaseLabel; l != "" {
		c.place(l, labelX, omegaTop+omegaH/2, anchor)
	}
	if l := s.Tail.LowerLabel; l != "" {
		c.place(l, labelX, s.OuterH-t, anchor)
	}
	if l := s.Tail.SupportLabel; l != "" {
		c.place(l, labelX, s.OuterH+support/2, anchor)
	}
	if l := s.Tail.DiagonalLabel; l != "" {
		c.place(l, labelX, targetY, anchor)
	}

	return TailLayout{Primitives: c.prims, Marks: c.marks}
}

// span returns the left X of a run of length n that starts at from and
// extends in direction dir.
func span(from, dir, n float64) float64 {
	if dir < 0 {
		return from - n
	}
	return from
}
