package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgstack/pkg/cache"
	"github.com/matzehuels/svgstack/pkg/errors"
	"github.com/matzehuels/svgstack/pkg/figure"
	"github.com/matzehuels/svgstack/pkg/observability"
	"github.com/matzehuels/svgstack/pkg/record"
	"github.com/matzehuels/svgstack/pkg/render"
	"github.com/matzehuels/svgstack/pkg/svg"
)

// Runner executes operations with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Refresh skips cache reads; fresh results are still written.
	Refresh bool
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Stack composes svg1 and svg2 into one document.
func (r *Runner) Stack(ctx context.Context, svg1, svg2 string, opts StackOptions) (*Result, error) {
	if opts.Unit == "" {
		opts.Unit = svg.DefaultUnit
	}
	key := r.Keyer.StackKey(svg1, svg2, cache.StackKeyOpts{
		Horizontal: opts.Horizontal,
		Separator:  opts.Separator,
		Unit:       opts.Unit,
		Minify:     opts.Minify,
	})

	res, err := r.cached(ctx, observability.OpStack, key, func() ([]byte, error) {
		out, err := svg.StackWith(svg1, svg2, opts.StackSpec)
		if err != nil {
			return nil, err
		}
		if opts.Minify {
			return svg.Minify(out)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	r.Logger.Info("stacked documents",
		"horizontal", opts.Horizontal,
		"separator", opts.Separator,
		"bytes", len(res.Data),
		"cached", res.CacheHit,
		"duration", res.Duration)
	return res, nil
}

// Rescale scales a document uniformly by scale.
func (r *Runner) Rescale(ctx context.Context, content string, scale float64) (*Result, error) {
	if err := errors.ValidateScale(scale); err != nil {
		return nil, err
	}

	res, err := r.cached(ctx, observability.OpRescale, r.Keyer.RescaleKey(content, scale), func() ([]byte, error) {
		out, err := svg.Rescale(content, scale)
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	})
	if err != nil {
		return nil, err
	}

	r.Logger.Info("rescaled document",
		"scale", scale,
		"cached", res.CacheHit,
		"duration", res.Duration)
	return res, nil
}

// PNG rasterizes a document.
func (r *Runner) PNG(ctx context.Context, content string, opts PNGOptions) (*Result, error) {
	opts = opts.withDefaults()
	backend, err := render.BackendByName(opts.Backend)
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateDPI(opts.DPI); err != nil {
		return nil, err
	}

	key := r.Keyer.PNGKey(content, cache.PNGKeyOpts{DPI: opts.DPI, Backend: opts.Backend})
	res, err := r.cached(ctx, observability.OpPNG, key, func() ([]byte, error) {
		return render.Rasterize(backend, []byte(content), opts.DPI)
	})
	if err != nil {
		return nil, err
	}

	r.Logger.Info("rasterized document",
		"dpi", opts.DPI,
		"backend", opts.Backend,
		"bytes", len(res.Data),
		"cached", res.CacheHit,
		"duration", res.Duration)
	return res, nil
}

// ImgTag rasterizes a document and wraps the PNG in an <img> tag.
func (r *Runner) ImgTag(ctx context.Context, content string, opts PNGOptions) (string, error) {
	res, err := r.PNG(ctx, content, opts)
	if err != nil {
		return "", err
	}
	return render.EncodeImgTag(res.Data), nil
}

// Record renders fig into a record, logging through the runner's logger
// unless opts override it. Records are not cached: figures are stateful.
func (r *Runner) Record(ctx context.Context, fig figure.Figure, name string, opts ...record.Option) (*record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all := append([]record.Option{record.WithLogger(r.Logger)}, opts...)
	return record.FromFigure(fig, name, all...)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cached returns the entry under key, or computes and stores it.
// Cache failures are logged and otherwise ignored.
func (r *Runner) cached(ctx context.Context, op, key string, compute func() ([]byte, error)) (*Result, error) {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnOperationStart(ctx, op)

	if !r.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("cache read failed", "op", op, "error", err)
		case hit:
			r.Logger.Debug("cache hit", "op", op, "key", key)
			observability.Cache().OnCacheHit(ctx, op)
			hooks.OnOperationComplete(ctx, op, len(data), time.Since(start), nil)
			return &Result{Data: data, CacheHit: true, Duration: time.Since(start)}, nil
		default:
			observability.Cache().OnCacheMiss(ctx, op)
		}
	}

	data, err := r.compute(ctx, compute)
	hooks.OnOperationComplete(ctx, op, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "op", op, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, op, len(data))
	}
	return &Result{Data: data, Duration: time.Since(start)}, nil
}

func (r *Runner) compute(ctx context.Context, fn func() ([]byte, error)) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fn()
}
