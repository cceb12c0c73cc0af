package layout

import "github.com/matzehuels/fencedraw/pkg/fence"

// AttachmentLayout holds the elements hung below the module.
type AttachmentLayout struct {
	Primitives []Primitive
	Marks      []Mark

	// ExtraHeight is the model-unit height added below the module.
	ExtraHeight float64
}

// Attachments lays out brackets, profile and omega below the module, in
// that order from top to bottom. An attachment is present when its height
// is positive.
func Attachments(s fence.Spec) AttachmentLayout {
	c := newCanvas(s.Scale)
	y := s.OuterH

	if a := s.BracketsHeight(); a > 0 {
		t := s.FrameThickness
		hi := s.OuterW - t
		for _, x := range s.Supports.Xs {
			c.rect(RoleBracket, clamp(x, 0, hi), y, t, a)
		}
		c.mark(MarkBrackets, a, y+a/2)
		y += a
	}
	if b := s.ProfileHeight(); b > 0 {
		c.rect(RoleProfile, 0, y, s.OuterW, b)
		c.mark(MarkProfile, b, y+b/2)
		y += b
	}
	if o := s.OmegaHeight(); o > 0 {
		l, r := s.OmegaExtend(fence.SideLeft), s.OmegaExtend(fence.SideRight)
		c.rect(RoleOmega, -l, y, s.OuterW+l+r, o)
		c.mark(MarkOmega, o, y+o/2)
		y += o
	}

	return AttachmentLayout{
		Primitives:  c.prims,
		Marks:       c.marks,
		ExtraHeight: y - s.OuterH,
	}
}
