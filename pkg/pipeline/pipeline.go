// Package pipeline runs the decode → layout → render pipeline shared by
// the CLI and the HTTP server.
//
// # Stages
//
//  1. Decode: read a TOML or JSON spec file and resolve it to millimetres
//  2. Layout: compute the ordered primitive list with [layout.Build]
//  3. Render: produce SVG, PNG, PDF or JSON artifacts
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    SpecPath: "gate.toml",
//	    Formats:  []string{"svg", "pdf"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Layouts are cached by a hash of the resolved spec; artifacts by a hash of
// the layout, the theme and the render options.
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fencedraw/pkg/cache"
	"github.com/matzehuels/fencedraw/pkg/errors"
	"github.com/matzehuels/fencedraw/pkg/fence"
	"github.com/matzehuels/fencedraw/pkg/fence/layout"
	"github.com/matzehuels/fencedraw/pkg/fence/sink"
	"github.com/matzehuels/fencedraw/pkg/spec"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Defaults shared by the CLI and the server.
const (
	DefaultFormat     = FormatSVG
	DefaultMargin     = sink.DefaultMargin
	DefaultPixelScale = 2.0
)

// Options configures one pipeline run. Exactly one of SpecPath and
// SpecData must be set.
type Options struct {
	// Input
	SpecPath   string `json:"-"`
	SpecData   []byte `json:"-"`
	SpecFormat string `json:"spec_format,omitempty"` // "toml", "json" or "" to infer

	// Layout
	Unit          string `json:"unit,omitempty"`  // display unit override
	Title         string `json:"title,omitempty"` // title override
	NoAnnotations bool   `json:"no_annotations,omitempty"`
	Strict        bool   `json:"strict,omitempty"` // unbalanced stacks are errors

	// Render
	Formats    []string `json:"formats,omitempty"`
	Margin     float64  `json:"margin,omitempty"`
	PixelScale float64  `json:"pixel_scale,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result holds everything one run produced.
type Result struct {
	// ID identifies the run in logs and response headers.
	ID string

	Resolved  *spec.Resolved
	Diagram   layout.Diagram
	Check     fence.StackCheck
	Artifacts map[string][]byte

	// LayoutHash is the content hash of the diagram.
	LayoutHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	Panels     int
	Primitives int
	DecodeTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // every requested artifact came from the cache
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks every format in formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, lowercases and
// de-duplicates it while keeping order.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// ValidateForDecode checks the input fields.
func (o *Options) ValidateForDecode() error {
	if o.SpecPath == "" && len(o.SpecData) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "a spec file or spec data is required")
	}
	if o.SpecPath != "" && len(o.SpecData) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "spec path and spec data are mutually exclusive")
	}
	switch spec.Format(o.SpecFormat) {
	case "", spec.FormatTOML, spec.FormatJSON:
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid spec format: %q (must be toml or json)", o.SpecFormat)
	}
	o.setLogger()
	return nil
}

// SetRenderDefaults fills unset render options.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.PixelScale == 0 {
		o.PixelScale = DefaultPixelScale
	}
	o.setLogger()
}

// ValidateForRender applies render defaults and checks them.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "margin must not be negative")
	}
	if o.PixelScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "pixel scale must be positive")
	}
	return nil
}

// ValidateAndSetDefaults validates every stage's options.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForDecode(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// LayoutKeyOpts returns the cache key options for the layout stage.
func (o *Options) LayoutKeyOpts(res *spec.Resolved) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Unit:          string(res.Unit),
		Title:         res.Title,
		NoAnnotations: o.NoAnnotations,
	}
}

// ArtifactKeyOpts returns the cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format, themeHash string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		ThemeHash:  themeHash,
		Margin:     o.Margin,
		PixelScale: o.PixelScale,
	}
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
