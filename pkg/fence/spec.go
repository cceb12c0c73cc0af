package fence

// Spec is the complete, already validated parameter set for one render.
type Spec struct {
	OuterW float64
	OuterH float64

	WithFrame      bool
	FrameThickness float64

	// Gaps between stack elements; see the package documentation for the
	// two layouts of this list.
	Gaps []float64
	// Panels lists panel heights from top to bottom.
	Panels []float64

	// VerticalBars are X offsets, measured from the outer left edge, of
	// full-height reinforcement strips one frame thickness wide.
	VerticalBars []float64

	Supports *Supports
	Profile  *Profile
	Omega    *Omega
	Tail     *Tail

	// Scale converts model millimetres to drawing units. Must be > 0.
	Scale float64
}

// Supports are short vertical brackets (A) directly below the module.
type Supports struct {
	Height float64
	Xs     []float64
}

// Profile is a full-width beam (B) below the brackets.
type Profile struct {
	Height float64
}

// Omega is the lowest beam (Ω). It may project beyond the module footprint.
type Omega struct {
	Height      float64
	ExtendLeft  float64
	ExtendRight float64
}

// Side selects which side of the module a tail is attached to.
type Side string

// Tail sides.
const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Direction returns +1 for the right side and -1 for the left side.
func (s Side) Direction() float64 {
	if s == SideLeft {
		return -1
	}
	return 1
}

// TailMode selects the tail geometry generator.
type TailMode string

// Tail modes.
const (
	// TailAuto derives every proportion from the module width.
	TailAuto TailMode = "auto"
	// TailManual lets the caller set each proportion directly.
	TailManual TailMode = "manual"
)

// Default tail proportions.
const (
	DefaultBaseFrac  = 0.35
	DefaultDiagFrac  = 0.75
	DefaultLowerFrac = 0.5

	DefaultManualBaseFrac   = 0.5
	DefaultManualLowerFrac  = 0.6
	DefaultManualDiagStart  = 1.0
	DefaultManualDiagTarget = 0.75
	MinTailBaseLength       = 30.0
	SecondaryDiagonalWeight = 0.8
)

// Tail describes the schematic sliding-gate tail. Fractions are clamped
// into [0, 1] by the accessors; a zero value selects the default.
type Tail struct {
	Enabled bool
	Side    Side
	Mode    TailMode

	BaseLabel     string
	LowerLabel    string
	SupportLabel  string
	DiagonalLabel string

	// Auto-mode proportions.
	BaseFrac  float64 // base length as a fraction of OuterW
	DiagFrac  float64 // diagonal target height as a fraction of the inner height
	LowerFrac float64 // lower extension as a fraction of the omega extension

	Manual *ManualTail
}

// ManualTail holds the fully parameterised tail proportions.
type ManualTail struct {
	BaseFrac       float64 // base length as a fraction of OuterH
	LowerFrac      float64 // bottom extension as a fraction of the base length
	DiagStartFrac  float64 // diagonal start along the base, from the module edge
	DiagTargetFrac float64 // diagonal target height as a fraction of the inner height
}

// SideOrDefault returns the tail side, defaulting to right.
func (t *Tail) SideOrDefault() Side {
	if t == nil || t.Side != SideLeft {
		return SideRight
	}
	return SideLeft
}

// ModeOrDefault returns the tail mode, defaulting to auto.
func (t *Tail) ModeOrDefault() TailMode {
	if t == nil || t.Mode != TailManual {
		return TailAuto
	}
	return TailManual
}

// BaseFraction returns the auto-mode base fraction.
func (t *Tail) BaseFraction() float64 { return fracOr(t.BaseFrac, DefaultBaseFrac) }

// DiagFraction returns the auto-mode diagonal height fraction.
func (t *Tail) DiagFraction() float64 { return fracOr(t.DiagFrac, DefaultDiagFrac) }

// LowerFraction returns the auto-mode lower extension fraction.
func (t *Tail) LowerFraction() float64 { return fracOr(t.LowerFrac, DefaultLowerFrac) }

// ManualOrDefault returns the manual proportions with defaults filled in.
func (t *Tail) ManualOrDefault() ManualTail {
	var m ManualTail
	if t != nil && t.Manual != nil {
		m = *t.Manual
	}
	return ManualTail{
		BaseFrac:       fracOr(m.BaseFrac, DefaultManualBaseFrac),
		LowerFrac:      fracOr(m.LowerFrac, DefaultManualLowerFrac),
		DiagStartFrac:  fracOr(m.DiagStartFrac, DefaultManualDiagStart),
		DiagTargetFrac: fracOr(m.DiagTargetFrac, DefaultManualDiagTarget),
	}
}

// fracOr returns v clamped into [0, 1], or def when v is not positive.
func fracOr(v, def float64) float64 {
	if !(v > 0) {
		return def
	}
	return min(v, 1)
}
