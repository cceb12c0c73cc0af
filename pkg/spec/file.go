package spec

import "github.com/matzehuels/fencedraw/pkg/numfmt"

// DefaultScale is the drawing units per millimetre used when a file does
// not set a scale.
const DefaultScale = 0.5

// File is the on-disk shape of a spec file.
type File struct {
	Title string         `toml:"title" json:"title,omitempty"`
	Unit  string         `toml:"unit" json:"unit,omitempty"`
	Scale *numfmt.Number `toml:"scale" json:"scale,omitempty"`

	Width          numfmt.Number   `toml:"width" json:"width"`
	Height         numfmt.Number   `toml:"height" json:"height"`
	Frame          *bool           `toml:"frame" json:"frame,omitempty"`
	FrameThickness numfmt.Number   `toml:"frame_thickness" json:"frame_thickness,omitempty"`
	Panels         []numfmt.Number `toml:"panels" json:"panels,omitempty"`
	Gaps           []numfmt.Number `toml:"gaps" json:"gaps,omitempty"`
	VerticalBars   []numfmt.Number `toml:"vertical_bars" json:"vertical_bars,omitempty"`

	Supports *SupportsFile `toml:"supports" json:"supports,omitempty"`
	Profile  *ProfileFile  `toml:"profile" json:"profile,omitempty"`
	Omega    *OmegaFile    `toml:"omega" json:"omega,omitempty"`
	Tail     *TailFile     `toml:"tail" json:"tail,omitempty"`

	Theme map[string]string `toml:"theme" json:"theme,omitempty"`
}

// SupportsFile describes the brackets (A) below the module.
type SupportsFile struct {
	Height numfmt.Number   `toml:"height" json:"height"`
	Xs     []numfmt.Number `toml:"xs" json:"xs,omitempty"`
}

// ProfileFile describes the profile (B) below the brackets.
type ProfileFile struct {
	Height numfmt.Number `toml:"height" json:"height"`
}

// OmegaFile describes the omega (Ω) base.
type OmegaFile struct {
	Height      numfmt.Number `toml:"height" json:"height"`
	ExtendLeft  numfmt.Number `toml:"extend_left" json:"extend_left,omitempty"`
	ExtendRight numfmt.Number `toml:"extend_right" json:"extend_right,omitempty"`
}

// TailFile describes the optional tail structure.
type TailFile struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	Side    string `toml:"side" json:"side,omitempty"`
	Mode    string `toml:"mode" json:"mode,omitempty"`

	BaseLabel     string `toml:"base_label" json:"base_label,omitempty"`
	LowerLabel    string `toml:"lower_label" json:"lower_label,omitempty"`
	SupportLabel  string `toml:"support_label" json:"support_label,omitempty"`
	DiagonalLabel string `toml:"diagonal_label" json:"diagonal_label,omitempty"`

	BaseFrac  numfmt.Number `toml:"base_frac" json:"base_frac,omitempty"`
	DiagFrac  numfmt.Number `toml:"diag_frac" json:"diag_frac,omitempty"`
	LowerFrac numfmt.Number `toml:"lower_frac" json:"lower_frac,omitempty"`

	Manual *ManualTailFile `toml:"manual" json:"manual,omitempty"`
}

// ManualTailFile holds the manual-mode tail proportions.
type ManualTailFile struct {
	BaseFrac       numfmt.Number `toml:"base_frac" json:"base_frac,omitempty"`
	LowerFrac      numfmt.Number `toml:"lower_frac" json:"lower_frac,omitempty"`
	DiagStartFrac  numfmt.Number `toml:"diag_start" json:"diag_start,omitempty"`
	DiagTargetFrac numfmt.Number `toml:"diag_target" json:"diag_target,omitempty"`
}
