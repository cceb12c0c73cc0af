package fence

// FrameT returns the frame thickness actually drawn: FrameThickness when
// the module has a frame, 0 otherwise.
func (s Spec) FrameT() float64 {
	if s.WithFrame {
		return s.FrameThickness
	}
	return 0
}

// InnerWidth is OuterW minus both frame sides, clamped to 0.
func (s Spec) InnerWidth() float64 {
	return max(0, s.OuterW-2*s.FrameT())
}

// InnerHeight is OuterH minus top and bottom frame, clamped to 0.
func (s Spec) InnerHeight() float64 {
	return max(0, s.OuterH-2*s.FrameT())
}

// BracketsHeight returns the bracket height, or 0 when absent.
func (s Spec) BracketsHeight() float64 {
	if s.Supports == nil {
		return 0
	}
	return max(0, s.Supports.Height)
}

// ProfileHeight returns the profile height, or 0 when absent.
func (s Spec) ProfileHeight() float64 {
	if s.Profile == nil {
		return 0
	}
	return max(0, s.Profile.Height)
}

// OmegaHeight returns the omega height, or 0 when absent.
func (s Spec) OmegaHeight() float64 {
	if s.Omega == nil {
		return 0
	}
	return max(0, s.Omega.Height)
}

// HasAttachments reports whether any sub-frame attachment has a positive
// height.
func (s Spec) HasAttachments() bool {
	return s.BracketsHeight() > 0 || s.ProfileHeight() > 0 || s.OmegaHeight() > 0
}

// TotalHeight is the full vertical extent of module plus attachments.
func (s Spec) TotalHeight() float64 {
	return s.OuterH + s.BracketsHeight() + s.ProfileHeight() + s.OmegaHeight()
}

// TailActive reports whether a tail should be drawn: it must be enabled and
// hang off an omega of positive height.
func (s Spec) TailActive() bool {
	return s.Tail != nil && s.Tail.Enabled && s.OmegaHeight() > 0
}

// OmegaExtend returns the omega projection on the given side.
func (s Spec) OmegaExtend(side Side) float64 {
	if s.Omega == nil {
		return 0
	}
	if side == SideLeft {
		return max(0, s.Omega.ExtendLeft)
	}
	return max(0, s.Omega.ExtendRight)
}

// WantGaps returns how many gap entries the stack consumes for the current
// panel count and frame mode.
func (s Spec) WantGaps() int {
	n := len(s.Panels)
	if n == 0 {
		if s.WithFrame {
			return 1
		}
		return 0
	}
	if s.WithFrame {
		return n + 1
	}
	return n - 1
}

// Gap returns gap i, or 0 when the list is too short.
func (s Spec) Gap(i int) float64 {
	if i < 0 || i >= len(s.Gaps) {
		return 0
	}
	return s.Gaps[i]
}

// StackGaps returns the gap values the stack consumes, top to bottom.
//
// With a frame the result is [top, mid..., bottom]: the top gap is the first
// entry, the bottom gap is always the last entry of the list and mid gaps
// are read in order between them. Without a frame only the mid gaps are
// returned. Entries the list does not supply are zero.
func (s Spec) StackGaps() []float64 {
	mids := max(len(s.Panels)-1, 0)
	if !s.WithFrame {
		out := make([]float64, mids)
		for i := range out {
			out[i] = s.Gap(i)
		}
		return out
	}

	last := len(s.Gaps) - 1
	out := make([]float64, 0, mids+2)
	out = append(out, s.Gap(0))
	for i := 1; i <= mids; i++ {
		g := 0.0
		if i < last {
			g = s.Gaps[i]
		}
		out = append(out, g)
	}
	bottom := 0.0
	if last >= 1 {
		bottom = s.Gaps[last]
	}
	return append(out, bottom)
}
