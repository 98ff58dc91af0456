package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ggframe/internal/server"
	"github.com/matzehuels/ggframe/pkg/cache"
	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/observability"
	"github.com/matzehuels/ggframe/pkg/pipeline"
	"github.com/matzehuels/ggframe/pkg/store"
)

type serveOpts struct {
	addr     string
	redisURL string
	mongoURI string
	database string
	timeout  time.Duration
	noCache  bool
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:     server.DefaultAddr,
		redisURL: os.Getenv(envRedisURL),
		mongoURI: os.Getenv(envMongoURI),
		database: store.DefaultDatabase,
		timeout:  server.DefaultRequestTimeout,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Routes:
  POST /v1/layout         lay out a figure and store the report
  POST /v1/render         render a figure in one format
  GET  /v1/layouts/{id}   fetch a stored report

Layouts and renders are cached in Redis when --redis is set
(or ` + envRedisURL + `), otherwise in the local cache directory. Reports
are stored in MongoDB when --mongo is set (or ` + envMongoURI + `),
otherwise in memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", opts.redisURL, "Redis URL for the shared cache")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", opts.mongoURI, "MongoDB URI for the report store")
	cmd.Flags().StringVar(&opts.database, "database", opts.database, "MongoDB database name")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	cch, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cch, nil, c.Logger)
	defer runner.Close()

	st, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			c.Logger.Warn("close store", "err", err)
		}
	}()

	observability.SetHTTPHooks(observability.NewLogHooks(c.Logger))

	srv := server.New(server.Config{Addr: opts.addr, RequestTimeout: opts.timeout}, runner, st, c.Logger)
	printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(opts.addr)))
	return srv.ListenAndServe(ctx)
}

func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisURL == "" {
		return newCache(false)
	}
	if err := errors.ValidateURL(opts.redisURL, "redis", "rediss"); err != nil {
		return nil, err
	}
	rc, err := cache.NewRedisCache(ctx, opts.redisURL, cache.DefaultRedisPrefix)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.Logger.Info("using redis cache")
	return rc, nil
}

func (c *CLI) serveStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	if opts.mongoURI == "" {
		return store.NewMemory(), nil
	}
	if err := errors.ValidateURL(opts.mongoURI, "mongodb", "mongodb+srv"); err != nil {
		return nil, err
	}
	ms, err := store.NewMongoStore(ctx, opts.mongoURI, opts.database, store.DefaultRetention)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	c.Logger.Info("using mongo report store", "database", opts.database)
	return ms, nil
}

// displayAddr turns a listen address like ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
