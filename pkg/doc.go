// Package pkg provides the core libraries for fencedraw panel diagrams.
//
// # Overview
//
// fencedraw turns the description of a fence or gate module (outer frame,
// a vertical stack of panels separated by gaps, optional sub-frame
// attachments and a side tail) into a dimensioned side-view drawing. The pkg
// directory is organized into these areas:
//
//  1. [fence] - Domain model, derived quantities and validation
//  2. [fence/layout] - Geometry: the ordered primitive list of a diagram
//  3. [fence/sink] - Output formats (SVG, PNG, PDF, JSON)
//  4. [spec] - TOML/JSON spec files, unit conversion and theme resolution
//  5. [pipeline] - Orchestration (decode → layout → render) with caching
//
// # Architecture
//
// The typical data flow through fencedraw:
//
//	gate.toml / gate.json
//	         ↓
//	    [spec] package (decode, convert to mm, validate)
//	         ↓
//	    [fence/layout] package (frame, stack, attachments, tail, captions)
//	         ↓
//	    [fence/sink] package (SVG/PNG/PDF/JSON)
//
// # Quick Start
//
// Load a spec and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/fencedraw/pkg/fence/layout"
//	    "github.com/matzehuels/fencedraw/pkg/fence/sink"
//	    "github.com/matzehuels/fencedraw/pkg/spec"
//	)
//
//	// 1. Decode and resolve the spec
//	f, _ := spec.Load("gate.toml")
//	res, _ := spec.Resolve(f)
//
//	// 2. Compute the layout
//	cfg := layout.DefaultAnnotationConfig()
//	cfg.Unit = res.Unit
//	d := layout.Build(res.Spec, layout.WithAnnotations(cfg))
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(d, sink.WithTheme(res.Theme))
//
// # Main Packages
//
// [units] and [numfmt] - Length units (mm, cm, in) and the number parsing
// and two-decimal formatting shared by captions and the CLI.
//
// [fence] - The Spec type, derived heights, the stack-sum check and
// structural validation.
//
// [fence/styles] - Themes and color parsing for the sinks.
//
// [cache] - Layout and artifact caching with file, Redis and null backends.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Error codes shared by the CLI and the HTTP API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/fence/...              # Specific package
//	REDIS_URL=redis://localhost:6379 go test ./pkg/cache  # Include Redis
//
// [fence]: https://pkg.go.dev/github.com/matzehuels/fencedraw/pkg/fence
// [fence/layout]: https://pkg.go.dev/github.com/matzehuels/fencedraw/pkg/fence/layout
// [fence/sink]: https://pkg.go.dev/github.com/matzehuels/fencedraw/pkg/fence/sink
// [fence/styles]: https://pkg.go.dev/github.com/matzehuels/fencedraw/pkg/fence/styles
// [spec]: https://pkg.go.dev/github.com/matzehuels/fencedraw/pkg/spec
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/fencedraw/pkg/pipeline
// [units]: https://pkg.go.dev/github.com/matzehuels/fencedraw/pkg/units
// [numfmt]: https://pkg.go.dev/github.com/matzehuels/fencedraw/pkg/numfmt
// [cache]: https://pkg.go.dev/github.com/matzehuels/fencedraw/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/fencedraw/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/fencedraw/pkg/errors
package pkg
