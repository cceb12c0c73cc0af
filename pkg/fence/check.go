package fence

import (
	"math"

	"github.com/matzehuels/fencedraw/pkg/errors"
	"github.com/matzehuels/fencedraw/pkg/numfmt"
)

// Tolerance is the absolute slack, in mm, allowed when checking that the
// stack adds up.
const Tolerance = 1e-6

// StackCheck summarises whether the panel/gap stack fills the space it is
// drawn in.
type StackCheck struct {
	WantGaps int     // gap entries the stack consumes
	GotGaps  int     // gap entries supplied
	Target   float64 // InnerHeight with a frame, OuterH without
	Sum      float64 // panels plus consumed gaps
}

// Balanced reports whether the gap count matches and the stack sums to the
// target within [Tolerance].
func (c StackCheck) Balanced() bool {
	return c.WantGaps == c.GotGaps && math.Abs(c.Target-c.Sum) <= Tolerance
}

// Delta is Target minus Sum: positive when the stack is short.
func (c StackCheck) Delta() float64 { return c.Target - c.Sum }

// Err returns an INCONSISTENT_STACK error describing the mismatch, or nil.
func (c StackCheck) Err() error {
	if c.WantGaps != c.GotGaps {
		return errors.New(errors.ErrCodeInconsistentStack,
			"expected %d gap entries, got %d", c.WantGaps, c.GotGaps)
	}
	if !c.Balanced() {
		return errors.New(errors.ErrCodeInconsistentStack,
			"panels and gaps sum to %s, want %s", numfmt.Fmt2(c.Sum), numfmt.Fmt2(c.Target))
	}
	return nil
}

// CheckStack compares the stack against its target height. The stack
// layout draws whatever it is given; callers decide whether a mismatch is
// a warning or an error.
func CheckStack(s Spec) StackCheck {
	c := StackCheck{
		WantGaps: s.WantGaps(),
		GotGaps:  len(s.Gaps),
		Target:   s.OuterH,
	}
	if s.WithFrame {
		c.Target = s.InnerHeight()
	}
	for _, p := range s.Panels {
		c.Sum += p
	}
	for _, g := range s.StackGaps() {
		c.Sum += g
	}
	return c
}

// Validate checks the invariants the layout engine relies on but does not
// verify itself: finite numbers, positive scale and non-negative sizes.
func Validate(s Spec) error {
	if !finite(s.Scale) || s.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "scale must be a positive number")
	}
	checks := []field{
		{"width", s.OuterW},
		{"height", s.OuterH},
		{"frame_thickness", s.FrameThickness},
	}
	for _, c := range checks {
		if err := nonNegative(c.name, c.v); err != nil {
			return err
		}
	}
	if err := nonNegativeAll("panels", s.Panels); err != nil {
		return err
	}
	if err := nonNegativeAll("gaps", s.Gaps); err != nil {
		return err
	}
	if err := finiteAll("vertical_bars", s.VerticalBars); err != nil {
		return err
	}
	if s.Supports != nil {
		if err := nonNegative("supports.height", s.Supports.Height); err != nil {
			return err
		}
		if err := finiteAll("supports.xs", s.Supports.Xs); err != nil {
			return err
		}
	}
	if s.Profile != nil {
		if err := nonNegative("profile.height", s.Profile.Height); err != nil {
			return err
		}
	}
	if s.Omega != nil {
		for _, c := range []field{
			{"omega.height", s.Omega.Height},
			{"omega.extend_left", s.Omega.ExtendLeft},
			{"omega.extend_right", s.Omega.ExtendRight},
		} {
			if err := nonNegative(c.name, c.v); err != nil {
				return err
			}
		}
	}
	if s.Tail != nil {
		labels := [][2]string{
			{"tail.base_label", s.Tail.BaseLabel},
			{"tail.lower_label", s.Tail.LowerLabel},
			{"tail.support_label", s.Tail.SupportLabel},
			{"tail.diagonal_label", s.Tail.DiagonalLabel},
		}
		for _, l := range labels {
			if err := errors.ValidateLabel(l[0], l[1]); err != nil {
				return err
			}
		}
	}
	return nil
}

type field struct {
	name string
	v    float64
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func nonNegative(name string, v float64) error {
	if !finite(v) {
		return errors.New(errors.ErrCodeInvalidSpec, "%s is not a number", name)
	}
	if v < 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "%s must not be negative (got %s)", name, numfmt.Fmt2(v))
	}
	return nil
}

func nonNegativeAll(name string, vs []float64) error {
	for i, v := range vs {
		if !finite(v) {
			return errors.New(errors.ErrCodeInvalidSpec, "%s[%d] is not a number", name, i)
		}
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidSpec, "%s[%d] must not be negative (got %s)", name, i, numfmt.Fmt2(v))
		}
	}
	return nil
}

func finiteAll(name string, vs []float64) error {
	for i, v := range vs {
		if !finite(v) {
			return errors.New(errors.ErrCodeInvalidSpec, "%s[%d] is not a number", name, i)
		}
	}
	return nil
}
