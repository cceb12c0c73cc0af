package spec

import (
	"strings"

	"github.com/matzehuels/fencedraw/pkg/errors"
	"github.com/matzehuels/fencedraw/pkg/fence"
	"github.com/matzehuels/fencedraw/pkg/fence/styles"
	"github.com/matzehuels/fencedraw/pkg/numfmt"
	"github.com/matzehuels/fencedraw/pkg/units"
)

// Resolved is a validated spec ready for layout.
type Resolved struct {
	Spec  fence.Spec
	Unit  units.Unit // display unit for captions
	Title string
	Theme styles.Theme
}

// Resolve converts f to millimetres and validates it.
func Resolve(f *File) (*Resolved, error) {
	if f == nil {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "empty spec")
	}
	unit, err := units.Parse(f.Unit)
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateLabel("title", f.Title); err != nil {
		return nil, err
	}
	if !(f.Width > 0) || !(f.Height > 0) {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "width and height must be positive numbers")
	}

	mm := func(n numfmt.Number) float64 { return units.ToMM(n.Float(), unit) }
	mmAll := func(ns []numfmt.Number) []float64 {
		out := numfmt.Floats(ns)
		for i := range out {
			out[i] = units.ToMM(out[i], unit)
		}
		return out
	}

	s := fence.Spec{
		OuterW:         mm(f.Width),
		OuterH:         mm(f.Height),
		WithFrame:      f.Frame == nil || *f.Frame,
		FrameThickness: mm(f.FrameThickness),
		Panels:         mmAll(f.Panels),
		Gaps:           mmAll(f.Gaps),
		VerticalBars:   mmAll(f.VerticalBars),
		Scale:          DefaultScale,
	}
	if f.Scale != nil {
		s.Scale = f.Scale.Float()
	}
	if f.Supports != nil {
		s.Supports = &fence.Supports{Height: mm(f.Supports.Height), Xs: mmAll(f.Supports.Xs)}
	}
	if f.Profile != nil {
		s.Profile = &fence.Profile{Height: mm(f.Profile.Height)}
	}
	if f.Omega != nil {
		s.Omega = &fence.Omega{
			Height:      mm(f.Omega.Height),
			ExtendLeft:  mm(f.Omega.ExtendLeft),
			ExtendRight: mm(f.Omega.ExtendRight),
		}
	}
	if f.Tail != nil {
		if s.Tail, err = resolveTail(f.Tail); err != nil {
			return nil, err
		}
	}
	if err := fence.Validate(s); err != nil {
		return nil, err
	}

	theme, err := styles.ParseTheme(f.Theme)
	if err != nil {
		return nil, err
	}

	return &Resolved{
		Spec:  s,
		Unit:  unit,
		Title: strings.TrimSpace(f.Title),
		Theme: theme,
	}, nil
}

func resolveTail(t *TailFile) (*fence.Tail, error) {
	side := fence.Side(strings.ToLower(strings.TrimSpace(t.Side)))
	switch side {
	case "":
		side = fence.SideRight
	case fence.SideLeft, fence.SideRight:
	default:
		return nil, errors.New(errors.ErrCodeInvalidSpec, "tail.side must be left or right, got %q", t.Side)
	}
	mode := fence.TailMode(strings.ToLower(strings.TrimSpace(t.Mode)))
	switch mode {
	case "":
		mode = fence.TailAuto
	case fence.TailAuto, fence.TailManual:
	default:
		return nil, errors.New(errors.ErrCodeInvalidSpec, "tail.mode must be auto or manual, got %q", t.Mode)
	}

	fracs := []fraction{
		{"tail.base_frac", t.BaseFrac},
		{"tail.diag_frac", t.DiagFrac},
		{"tail.lower_frac", t.LowerFrac},
	}
	if m := t.Manual; m != nil {
		fracs = append(fracs, []fraction{
			{"tail.manual.base_frac", m.BaseFrac},
			{"tail.manual.lower_frac", m.LowerFrac},
			{"tail.manual.diag_start", m.DiagStartFrac},
			{"tail.manual.diag_target", m.DiagTargetFrac},
		}...)
	}
	for _, f := range fracs {
		if f.v.IsNaN() || f.v < 0 || f.v > 1 {
			return nil, errors.New(errors.ErrCodeInvalidSpec, "%s must be between 0 and 1", f.name)
		}
	}

	out := &fence.Tail{
		Enabled:       t.Enabled,
		Side:          side,
		Mode:          mode,
		BaseLabel:     t.BaseLabel,
		LowerLabel:    t.LowerLabel,
		SupportLabel:  t.SupportLabel,
		DiagonalLabel: t.DiagonalLabel,
		BaseFrac:      t.BaseFrac.Float(),
		DiagFrac:      t.DiagFrac.Float(),
		LowerFrac:     t.LowerFrac.Float(),
	}
	if m := t.Manual; m != nil {
		out.Manual = &fence.ManualTail{
			BaseFrac:       m.BaseFrac.Float(),
			LowerFrac:      m.LowerFrac.Float(),
			DiagStartFrac:  m.DiagStartFrac.Float(),
			DiagTargetFrac: m.DiagTargetFrac.Float(),
		}
	}
	return out, nil
}

type fraction struct {
	name string
	v    numfmt.Number
}
