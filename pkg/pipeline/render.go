package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/fencedraw/pkg/errors"
	"github.com/matzehuels/fencedraw/pkg/fence/layout"
	"github.com/matzehuels/fencedraw/pkg/fence/sink"
	"github.com/matzehuels/fencedraw/pkg/observability"
	"github.com/matzehuels/fencedraw/pkg/spec"
)

// Render draws d in every requested format.
func Render(ctx context.Context, d layout.Diagram, res *spec.Resolved, opts Options) (artifacts map[string][]byte, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(d, res, opts, format)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat draws d in a single format.
func RenderFormat(d layout.Diagram, res *spec.Resolved, opts Options, format string) ([]byte, error) {
	sinkOpts := []sink.Option{
		sink.WithTheme(res.Theme),
		sink.WithMargin(opts.Margin),
		sink.WithPixelScale(opts.PixelScale),
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(d, sinkOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(d, sinkOpts...)
	case FormatPDF:
		return sink.RenderPDF(d, sinkOpts...)
	case FormatJSON:
		return sink.RenderJSON(d,
			sink.WithJSONUnit(string(res.Unit)),
			sink.WithJSONTitle(res.Title))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}
