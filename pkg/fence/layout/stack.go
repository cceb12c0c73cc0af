package layout

import "github.com/matzehuels/fencedraw/pkg/fence"

// Stack is the module frame plus the vertically stacked inner content.
type Stack struct {
	Frame []Primitive // top, bottom, left, right; empty without a frame
	Inner []Primitive // gaps, panels, bars in top-to-bottom order
	Marks []Mark

	// ContentBottom is the drawing-unit Y just below the last emitted
	// inner element. It equals the inner bottom edge only when the
	// panels and gaps add up to the available height.
	ContentBottom float64
}

// FrameAndStack lays out the frame and the panels, gaps and vertical bars
// inside it.
//
// With a frame the gap list is read as [top, mid..., bottom] and the bottom
// gap is always its last entry; without one it holds only the gaps between
// panels. Missing entries count as zero (see [fence.Spec.StackGaps]) and
// zero or negative gaps are neither drawn nor advance the cursor.
func FrameAndStack(s fence.Spec) Stack {
	c := newCanvas(s.Scale)
	t := s.FrameT()
	innerW := s.InnerWidth()
	gaps := s.StackGaps()

	y := t
	gap := func(i int, kind MarkKind) {
		g := gaps[i]
		if g <= 0 {
			return
		}
		p := c.rect(RoleGap, t, y, innerW, g)
		p.Dashed = true
		c.mark(kind, g, y+g/2)
		y += g
	}

	mid := 0
	if s.WithFrame {
		gap(0, MarkGap)
		mid = 1
	}
	for i, h := range s.Panels {
		c.rect(RolePanel, t, y, innerW, h)
		c.mark(MarkPanel, h, y+h/2)
		y += h
		if i < len(s.Panels)-1 {
			gap(mid+i, MarkGap)
		}
	}
	if s.WithFrame {
		gap(len(gaps)-1, MarkBottomGap)

		lo, hi := t, s.OuterW-2*t
		for _, x := range s.VerticalBars {
			c.rect(RoleBar, clamp(x, lo, hi), t, t, s.InnerHeight())
		}
	}

	st := Stack{
		Inner:         c.prims,
		Marks:         c.marks,
		ContentBottom: y * s.Scale,
	}
	if s.WithFrame {
		st.Frame = frame(s)
	}
	return st
}

func frame(s fence.Spec) []Primitive {
	c := newCanvas(s.Scale)
	t, w, h := s.FrameThickness, s.OuterW, s.OuterH
	c.rect(RoleFrameTop, 0, 0, w, t)
	c.rect(RoleFrameBottom, 0, h-t, w, t)
	c.rect(RoleFrameLeft, 0, 0, t, h)
	c.rect(RoleFrameRight, w-t, 0, t, h)
	return c.prims
}

// clamp limits v to [lo, hi]. When hi < lo the result is lo.
func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
