package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/fencedraw/pkg/cache"
	"github.com/matzehuels/fencedraw/pkg/errors"
	"github.com/matzehuels/fencedraw/pkg/fence"
	"github.com/matzehuels/fencedraw/pkg/fence/layout"
	"github.com/matzehuels/fencedraw/pkg/observability"
	"github.com/matzehuels/fencedraw/pkg/spec"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner may serve many goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil keyer
// selects [cache.DefaultKeyer].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs decode → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{ID: uuid.NewString()}
	logger := opts.Logger.With("id", result.ID)

	decodeStart := time.Now()
	res, err := Decode(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Resolved = res
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.Stats.Panels = len(res.Spec.Panels)

	layoutStart := time.Now()
	d, check, hash, layoutHit, err := r.LayoutWithCacheInfo(ctx, res, opts)
	if err != nil {
		return nil, err
	}
	result.Diagram = d
	result.Check = check
	result.LayoutHash = hash
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Primitives = len(d.Primitives)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"primitives", len(d.Primitives),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, d, hash, res, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo builds the diagram for res, consulting the cache
// first. It also returns the diagram's content hash and whether it was a
// cache hit.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, res *spec.Resolved, opts Options) (layout.Diagram, fence.StackCheck, string, bool, error) {
	r.applyLogger(&opts)

	check := fence.CheckStack(res.Spec)
	if opts.Strict {
		if err := check.Err(); err != nil {
			return layout.Diagram{}, check, "", false, err
		}
	}

	specHash, err := cache.HashJSON(res.Spec)
	if err != nil {
		return layout.Diagram{}, check, "", false, errors.Wrap(errors.ErrCodeInternal, err, "hash spec")
	}
	key := r.Keyer.LayoutKey(specHash, opts.LayoutKeyOpts(res))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var d layout.Diagram
			if err := json.Unmarshal(data, &d); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return d, check, cache.Hash(data), true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", key, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	d, check, err := Layout(ctx, res, opts)
	if err != nil {
		return layout.Diagram{}, check, "", false, err
	}

	data, err := json.Marshal(d)
	if err != nil {
		return layout.Diagram{}, check, "", false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout")
	}
	r.store(ctx, "layout", key, data, cache.TTLLayout)
	return d, check, cache.Hash(data), false, nil
}

// RenderWithCacheInfo renders every requested format, serving them from
// the cache when all are present. layoutHash identifies d.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d layout.Diagram, layoutHash string, res *spec.Resolved, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	themeHash, err := cache.HashJSON(res.Theme)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "hash theme")
	}
	keyFor := func(format string) string {
		return r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format, themeHash))
	}

	if !opts.Refresh && layoutHash != "" {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, keyFor(format))
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered, err := Render(ctx, d, res, opts)
	if err != nil {
		return nil, false, err
	}
	if layoutHash != "" {
		for format, data := range rendered {
			r.store(ctx, "artifact", keyFor(format), data, cache.TTLArtifact)
		}
	}
	return rendered, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
