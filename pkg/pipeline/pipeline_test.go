package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/fencedraw/pkg/cache"
	"github.com/matzehuels/fencedraw/pkg/errors"
	"github.com/matzehuels/fencedraw/pkg/observability"
	"github.com/matzehuels/fencedraw/pkg/units"
)

const gateTOML = `
title = "Gate G-1"
width = 1200
height = 1800
frame_thickness = 40
panels = [520, 520, 520]
gaps = [50, 30, 30, 50]

[omega]
height = 60
`

const shortTOML = `
width = 1200
height = 1800
frame_thickness = 40
panels = [500, 500, 500]
gaps = [50, 30, 30, 50]
`

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"svg", []string{"svg"}},
		{"SVG, png ,svg", []string{"svg", "png"}},
		{" , ", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ParseFormats(tt.in)); diff != "" {
			t.Errorf("ParseFormats(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no input", Options{}, errors.ErrCodeInvalidInput},
		{"both inputs", Options{SpecPath: "a.toml", SpecData: []byte("x")}, errors.ErrCodeInvalidInput},
		{"bad spec format", Options{SpecData: []byte("x"), SpecFormat: "yaml"}, errors.ErrCodeInvalidFormat},
		{"bad output format", Options{SpecData: []byte("x"), Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative margin", Options{SpecData: []byte("x"), Margin: -1}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSetRenderDefaults(t *testing.T) {
	var o Options
	o.SetRenderDefaults()
	if diff := cmp.Diff([]string{FormatSVG}, o.Formats); diff != "" {
		t.Errorf("Formats mismatch:\n%s", diff)
	}
	if o.Margin != DefaultMargin || o.PixelScale != DefaultPixelScale || o.Logger == nil {
		t.Errorf("defaults not applied: %+v", o)
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		SpecData: []byte(gateTOML),
		Formats:  []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.ID == "" {
		t.Error("missing run ID")
	}
	if res.Stats.Panels != 3 || res.Stats.Primitives == 0 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if !res.Check.Balanced() {
		t.Errorf("stack should be balanced: %+v", res.Check)
	}
	if res.Diagram.TotalHeight != 1860 {
		t.Errorf("TotalHeight = %v, want 1860", res.Diagram.TotalHeight)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("null cache should never hit: %+v", res.CacheInfo)
	}

	checks := map[string]func([]byte) bool{
		FormatSVG:  func(b []byte) bool { return bytes.Contains(b, []byte("<svg")) },
		FormatPNG:  func(b []byte) bool { return bytes.HasPrefix(b, []byte("\x89PNG")) },
		FormatPDF:  func(b []byte) bool { return bytes.HasPrefix(b, []byte("%PDF")) },
		FormatJSON: func(b []byte) bool { return bytes.Contains(b, []byte(`"title": "Gate G-1"`)) },
	}
	for format, ok := range checks {
		data, found := res.Artifacts[format]
		if !found || !ok(data) {
			t.Errorf("artifact %s missing or malformed (%d bytes)", format, len(data))
		}
	}
}

func TestExecuteFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gate.toml")
	if err := os.WriteFile(path, []byte(gateTOML), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{SpecPath: path})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, ok := res.Artifacts[FormatSVG]; !ok {
		t.Error("default format should be svg")
	}

	_, err = r.Execute(context.Background(), Options{SpecPath: filepath.Join(dir, "missing.toml")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}

	// An explicit format overrides the extension.
	txt := filepath.Join(dir, "gate.txt")
	if err := os.WriteFile(txt, []byte(gateTOML), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Execute(context.Background(), Options{SpecPath: txt, SpecFormat: "toml"}); err != nil {
		t.Errorf("explicit format: %v", err)
	}
}

func TestExecuteCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{SpecData: []byte(gateTOML), Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if first.LayoutHash != second.LayoutHash {
		t.Error("layout hash changed between runs")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached SVG differs from rendered SVG")
	}
	if diff := cmp.Diff(first.Diagram, second.Diagram); diff != "" {
		t.Errorf("cached diagram mismatch (-first +second):\n%s", diff)
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass the cache: %+v", third.CacheInfo)
	}

	// A new format misses the artifact cache but reuses the layout.
	fourth, err := r.Execute(ctx, Options{SpecData: []byte(gateTOML), Formats: []string{FormatSVG, FormatPDF}})
	if err != nil {
		t.Fatal(err)
	}
	if !fourth.CacheInfo.LayoutHit || fourth.CacheInfo.RenderHit {
		t.Errorf("new format CacheInfo = %+v", fourth.CacheInfo)
	}
}

func TestExecuteStrict(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	res, err := r.Execute(ctx, Options{SpecData: []byte(shortTOML)})
	if err != nil {
		t.Fatalf("lenient run: %v", err)
	}
	if res.Check.Balanced() || len(res.Diagram.Warnings) == 0 {
		t.Errorf("expected unbalanced stack warning, got %+v", res.Diagram.Warnings)
	}
	if d := res.Check.Delta(); d != 60 {
		t.Errorf("Delta = %v, want 60", d)
	}

	_, err = r.Execute(ctx, Options{SpecData: []byte(shortTOML), Strict: true})
	if !errors.Is(err, errors.ErrCodeInconsistentStack) {
		t.Errorf("strict error = %v, want INCONSISTENT_STACK", err)
	}
}

func TestDecodeOverrides(t *testing.T) {
	ctx := context.Background()

	res, err := Decode(ctx, Options{SpecData: []byte(gateTOML), Unit: "cm", Title: "  Side gate "})
	if err != nil {
		t.Fatal(err)
	}
	if res.Unit != units.CM {
		t.Errorf("Unit = %s, want cm", res.Unit)
	}
	if res.Title != "Side gate" {
		t.Errorf("Title = %q", res.Title)
	}
	if res.Spec.OuterW != 1200 {
		t.Errorf("display unit must not rescale geometry: OuterW = %v", res.Spec.OuterW)
	}

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad unit", Options{SpecData: []byte(gateTOML), Unit: "furlong"}, errors.ErrCodeInvalidUnit},
		{"bad title", Options{SpecData: []byte(gateTOML), Title: "a\x07b"}, errors.ErrCodeInvalidSpec},
		{"bad toml", Options{SpecData: []byte("width = ")}, errors.ErrCodeInvalidSpec},
		{"json sniffed", Options{SpecData: []byte(`{"width": 0, "height": 1}`)}, errors.ErrCodeInvalidSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(ctx, tt.opts); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestNoAnnotations(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{SpecData: []byte(gateTOML), NoAnnotations: true})
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(res.Artifacts[FormatSVG], []byte("<text")) {
		t.Error("annotations disabled but SVG contains text")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	stages []string
}

func (h *recordingHooks) record(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stages = append(h.stages, s)
}

func (h *recordingHooks) OnDecodeComplete(context.Context, string, time.Duration, error) {
	h.record("decode")
}

func (h *recordingHooks) OnLayoutComplete(context.Context, int, time.Duration, error) {
	h.record("layout")
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, formats []string, _ time.Duration, _ error) {
	h.record("render:" + strings.Join(formats, ","))
}

func TestHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{SpecData: []byte(gateTOML), Formats: []string{"json"}}); err != nil {
		t.Fatal(err)
	}
	want := []string{"decode", "layout", "render:json"}
	if diff := cmp.Diff(want, h.stages); diff != "" {
		t.Errorf("hook order mismatch (-want +got):\n%s", diff)
	}
}
