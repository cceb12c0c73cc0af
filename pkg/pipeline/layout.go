package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/fencedraw/pkg/fence"
	"github.com/matzehuels/fencedraw/pkg/fence/layout"
	"github.com/matzehuels/fencedraw/pkg/observability"
	"github.com/matzehuels/fencedraw/pkg/spec"
)

// Layout checks the stack and builds the diagram. An unbalanced stack is
// a warning on the diagram, or an INCONSISTENT_STACK error when
// opts.Strict is set.
func Layout(ctx context.Context, res *spec.Resolved, opts Options) (d layout.Diagram, check fence.StackCheck, err error) {
	opts.setLogger()
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(res.Spec.Panels))
	start := time.Now()
	defer func() { hooks.OnLayoutComplete(ctx, len(d.Primitives), time.Since(start), err) }()

	check = fence.CheckStack(res.Spec)
	if opts.Strict {
		if err := check.Err(); err != nil {
			return layout.Diagram{}, check, err
		}
	}

	d = layout.Build(res.Spec, layoutOptions(res, opts)...)
	for _, w := range d.Warnings {
		opts.Logger.Warn(w)
	}
	return d, check, nil
}

func layoutOptions(res *spec.Resolved, opts Options) []layout.Option {
	if opts.NoAnnotations {
		return []layout.Option{layout.WithoutAnnotations()}
	}
	cfg := layout.DefaultAnnotationConfig()
	cfg.Unit = res.Unit
	cfg.Title = res.Title
	return []layout.Option{layout.WithAnnotations(cfg)}
}
