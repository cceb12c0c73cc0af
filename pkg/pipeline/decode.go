package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/fencedraw/pkg/errors"
	"github.com/matzehuels/fencedraw/pkg/observability"
	"github.com/matzehuels/fencedraw/pkg/spec"
	"github.com/matzehuels/fencedraw/pkg/units"
)

// Decode reads and resolves the spec named by opts, then applies the unit
// and title overrides.
func Decode(ctx context.Context, opts Options) (res *spec.Resolved, err error) {
	if err := opts.ValidateForDecode(); err != nil {
		return nil, err
	}

	source := opts.SpecPath
	if source == "" {
		source = "<data>"
	}
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, source)
	start := time.Now()
	defer func() { hooks.OnDecodeComplete(ctx, source, time.Since(start), err) }()

	f, err := readSpec(opts)
	if err != nil {
		return nil, err
	}
	if res, err = spec.Resolve(f); err != nil {
		return nil, err
	}

	if opts.Unit != "" {
		if res.Unit, err = units.Parse(opts.Unit); err != nil {
			return nil, err
		}
	}
	if opts.Title != "" {
		if err := errors.ValidateLabel("title", opts.Title); err != nil {
			return nil, err
		}
		res.Title = strings.TrimSpace(opts.Title)
	}

	opts.Logger.Debug("resolved spec",
		"source", source,
		"panels", len(res.Spec.Panels),
		"unit", res.Unit)
	return res, nil
}

func readSpec(opts Options) (*spec.File, error) {
	if opts.SpecPath != "" {
		if opts.SpecFormat == "" {
			return spec.Load(opts.SpecPath)
		}
		return spec.LoadFormat(opts.SpecPath, spec.Format(opts.SpecFormat))
	}

	format := spec.Format(opts.SpecFormat)
	if format == "" {
		format = spec.Sniff(opts.SpecData)
	}
	return spec.Parse(opts.SpecData, format)
}
