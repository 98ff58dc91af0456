// Package layout runs the layout engine over a figure.
//
// An [Engine] measures the figure, builds the side spaces of every plot,
// aligns composed plots, solves each panel grid and moves the artifacts
// to their final positions:
//
//	eng := layout.New(layout.WithMeasurer(backend.NewFontMeasurer()))
//	res, err := eng.Layout(ctx, fig)
//	if err != nil {
//	    return err
//	}
//	for _, w := range res.Warnings {
//	    fmt.Println(w.Message)
//	}
//
// A pass is synchronous. The returned scene is not modified afterwards
// and can be rendered from several goroutines.
package layout

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ggframe/pkg/backend"
	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/figure"
	"github.com/matzehuels/ggframe/pkg/gridspec"
	"github.com/matzehuels/ggframe/pkg/layout/solver"
	"github.com/matzehuels/ggframe/pkg/layout/space"
	"github.com/matzehuels/ggframe/pkg/layout/translate"
	"github.com/matzehuels/ggframe/pkg/layout/tree"
	"github.com/matzehuels/ggframe/pkg/scene"
)

// Engine lays out figures. It holds no per-figure state and can be used
// by several goroutines when its Measurer can.
type Engine struct {
	Measurer backend.Measurer
	Config   backend.Config
	Logger   *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMeasurer sets the text measurer.
func WithMeasurer(m backend.Measurer) Option {
	return func(e *Engine) { e.Measurer = m }
}

// WithConfig sets the backend config handed to the translator.
func WithConfig(cfg backend.Config) Option {
	return func(e *Engine) { e.Config = cfg }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l == nil {
			l = log.NewWithOptions(io.Discard, log.Options{})
		}
		e.Logger = l
	}
}

// New returns an engine with the embedded fonts, the default backend
// config and the default logger, overridden by opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		Config: backend.NewConfig(),
		Logger: log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.Measurer == nil {
		e.Measurer = backend.NewFontMeasurer()
	}
	return e
}

// Result is the outcome of one layout pass.
type Result struct {
	Scene    *scene.Figure
	Tree     *tree.Tree // nil for a single plot
	Report   *Report
	Warnings errors.Warnings
	Duration time.Duration
}

// Layout lays out fig.
//
// Configuration errors abort the pass. Plots whose panels do not fit are
// reported as DEGENERATE_GEOMETRY warnings and keep the default panel
// grid.
func (e *Engine) Layout(ctx context.Context, fig *figure.Figure) (*Result, error) {
	start := time.Now()

	sf, err := scene.Build(fig, e.Measurer)
	if err != nil {
		return nil, err
	}

	spaces := make(map[*scene.Plot]*space.PlotSpaces, len(sf.Plots))
	for _, p := range sf.Plots {
		ps, err := space.NewPlotSpaces(p)
		if err != nil {
			return nil, err
		}
		spaces[p] = ps
	}

	tr := translate.New(e.Config)
	res := &Result{Scene: sf}

	var cs *space.CompositionSpaces
	if c := sf.Composition(); c != nil {
		cs = space.NewCompositionSpaces(c, sf.Width, sf.Height)
		tr.Composition(cs, sf.Width, sf.Height)
		res.Tree = tree.Build(c, func(p *scene.Plot) *space.PlotSpaces { return spaces[p] })
		res.Tree.Harmonise()
	}

	solutions := make(map[*scene.Plot]solver.Solution, len(sf.Plots))
	for _, p := range sf.Plots {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "layout of %q interrupted", sf.Name)
		}
		ps := spaces[p]
		params := gridspec.Default()
		sol, err := solver.Solve(ps)
		if err != nil {
			if !errors.Is(err, errors.ErrCodeDegenerateGeometry) {
				return nil, err
			}
			e.Logger.Warn("keeping default panel grid",
				"plot", p.Name,
				"panel_w", sol.PanelW,
				"panel_h", sol.PanelH,
				"err", errors.UserMessage(err))
			res.Warnings.Add(asError(err))
		} else {
			params = sol.Params
		}
		solutions[p] = sol
		if err := tr.Plot(ps, params); err != nil {
			return nil, err
		}
	}

	res.Duration = time.Since(start)
	res.Report = newReport(sf, spaces, solutions, cs, res)
	// Positions were translated at the backend resolution, not the theme's.
	res.Report.DPI = e.Config.DPI()

	e.Logger.Debug("laid out figure",
		"figure", sf.Name,
		"plots", len(sf.Plots),
		"warnings", len(res.Warnings),
		"duration", res.Duration)
	return res, nil
}

func asError(err error) *errors.Error {
	if e, ok := errors.As(err); ok {
		return e
	}
	return errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "layout")
}
