package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ggframe/pkg/backend"
	"github.com/matzehuels/ggframe/pkg/cache"
	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/figure"
	ggio "github.com/matzehuels/ggframe/pkg/io"
	"github.com/matzehuels/ggframe/pkg/layout"
	"github.com/matzehuels/ggframe/pkg/observability"
)

// Runner executes the pipeline with caching.
//
// A Runner keeps no per-run state. Several goroutines can share one, which
// is how the API server uses it.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Measurer backend.Measurer
	Logger   *log.Logger
}

// NewRunner returns a runner. A nil cache disables caching, a nil keyer
// uses the default keyer and a nil logger the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Measurer: backend.NewFontMeasurer(),
		Logger:   logger,
	}
}

// Execute loads, lays out and renders a figure.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	loadStart := time.Now()
	fig, data, err := Load(opts)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Figure:     fig,
		FigureHash: cache.Hash(data),
		Artifacts:  make(map[string][]byte, len(opts.Formats)),
	}
	res.Stats.LoadTime = time.Since(loadStart)
	res.Stats.Plots = len(fig.Plots())
	logger.Debug("loaded figure", "figure", fig.Name, "plots", res.Stats.Plots, "duration", res.Stats.LoadTime)

	cfg := r.config(fig, opts)
	layoutKey := r.Keyer.LayoutKey(res.FigureHash, opts.LayoutKeyOpts(cfg.DPI()))

	// Everything cached: skip the layout.
	if !opts.Refresh {
		if rep, ok := r.cachedReport(ctx, layoutKey); ok {
			if arts, ok := r.cachedArtifacts(ctx, layoutKey, opts); ok {
				res.Report = rep
				res.Artifacts = arts
				res.Warnings = rep.Warnings
				res.CacheInfo = CacheInfo{LayoutHit: true, RenderHit: true}
				logger.Info("served from cache", "figure", fig.Name, "formats", opts.Formats)
				return res, nil
			}
		}
	}

	layoutStart := time.Now()
	lres, err := r.layout(ctx, fig, cfg, logger)
	if err != nil {
		return nil, err
	}
	res.Layout = lres
	res.Report = lres.Report
	res.Warnings = lres.Warnings.Messages()
	res.Stats.LayoutTime = time.Since(layoutStart)
	r.store(ctx, "layout", layoutKey, reportJSON(lres.Report), cache.TTLLayout)

	logger.Info("computed layout",
		"figure", fig.Name,
		"plots", res.Stats.Plots,
		"warnings", len(res.Warnings),
		"duration", res.Stats.LayoutTime)

	renderStart := time.Now()
	arts, err := r.render(ctx, lres, cfg, opts, layoutKey)
	if err != nil {
		return nil, err
	}
	res.Artifacts = arts
	res.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs", "formats", opts.Formats, "duration", res.Stats.RenderTime)
	return res, nil
}

// Layout runs only the layout stage, without caching.
func (r *Runner) Layout(ctx context.Context, opts Options) (*figure.Figure, *layout.Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	fig, _, err := Load(opts)
	if err != nil {
		return nil, nil, err
	}
	res, err := r.layout(ctx, fig, r.config(fig, opts), r.logger(opts))
	return fig, res, err
}

// Load reads the figure the options point at and returns it with the raw
// document bytes.
func Load(opts Options) (*figure.Figure, []byte, error) {
	if opts.Path != "" {
		return ggio.ImportFile(opts.Path)
	}
	fig, err := ggio.Load(opts.Data, opts.Format)
	if err != nil {
		return nil, nil, err
	}
	return fig, opts.Data, nil
}

func (r *Runner) layout(ctx context.Context, fig *figure.Figure, cfg backend.Config, logger *log.Logger) (*layout.Result, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, fig.Name, len(fig.Plots()))

	eng := layout.New(layout.WithMeasurer(r.Measurer), layout.WithConfig(cfg), layout.WithLogger(logger))
	start := time.Now()
	res, err := eng.Layout(ctx, fig)

	warnings := 0
	if res != nil {
		warnings = len(res.Warnings)
	}
	hooks.OnLayoutComplete(ctx, fig.Name, warnings, time.Since(start), err)
	return res, err
}

// render draws the missing formats in parallel and caches them.
func (r *Runner) render(ctx context.Context, lres *layout.Result, cfg backend.Config, opts Options, layoutKey string) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var mu sync.Mutex
	arts := make(map[string][]byte, len(opts.Formats))

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			key := r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format))
			data, hit := r.lookup(gctx, "artifact", key, opts.Refresh)
			if !hit {
				var err error
				if data, err = Render(gctx, lres, format, cfg, opts); err != nil {
					return errors.Wrap(codeOf(err), err, "render %s", format)
				}
				r.store(gctx, "artifact", key, data, cache.TTLArtifact)
			}
			mu.Lock()
			arts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return arts, nil
}

func (r *Runner) cachedReport(ctx context.Context, key string) (*layout.Report, bool) {
	data, hit := r.lookup(ctx, "layout", key, false)
	if !hit {
		return nil, false
	}
	rep, err := layout.UnmarshalReport(data)
	if err != nil {
		r.Logger.Debug("dropping unreadable cached layout", "err", err)
		return nil, false
	}
	return rep, true
}

func (r *Runner) cachedArtifacts(ctx context.Context, layoutKey string, opts Options) (map[string][]byte, bool) {
	arts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit := r.lookup(ctx, "artifact", r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format)), false)
		if !hit {
			return nil, false
		}
		arts[format] = data
	}
	return arts, true
}

// lookup reads key from the cache. Backend errors count as misses.
func (r *Runner) lookup(ctx context.Context, keyType, key string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType)
	}
	return data, hit
}

// store writes to the cache. Failures only cost a recomputation later.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if data == nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// config builds the backend config of a run. The figure theme supplies
// the resolution unless the options override it.
func (r *Runner) config(fig *figure.Figure, opts Options) backend.Config {
	dpi := opts.DPI
	if dpi == 0 {
		dpi = fig.Theme().DPI()
	}
	return backend.NewConfig(
		backend.WithDPI(dpi),
		backend.WithPixelSnap(opts.PixelSnap),
		backend.WithFontFamily(opts.FontFamily),
	)
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// Close releases the cache and the measurer.
func (r *Runner) Close() error {
	if c, ok := r.Measurer.(interface{ Close() error }); ok {
		_ = c.Close()
	}
	return r.Cache.Close()
}

func reportJSON(rep *layout.Report) []byte {
	data, err := layout.MarshalReport(rep)
	if err != nil {
		return nil
	}
	return data
}

// codeOf returns the code of err, or INTERNAL_ERROR for uncoded errors.
func codeOf(err error) errors.Code {
	if c := errors.GetCode(err); c != "" {
		return c
	}
	return errors.ErrCodeInternal
}
