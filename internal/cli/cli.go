// Package cli implements the ggframe command-line interface.
//
// # Commands
//
//   - layout: lay out a figure file and write the layout report
//   - render: render a figure file to SVG, PNG, PDF and friends
//   - tree: draw the composition tree of a figure with Graphviz
//   - inspect: browse the plots and side spaces of a layout interactively
//   - serve: run the HTTP API
//   - cache: manage the local layout cache
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs pipeline and cache events through the observability hooks.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ggframe/pkg/buildinfo"
	"github.com/matzehuels/ggframe/pkg/cache"
	"github.com/matzehuels/ggframe/pkg/observability"
	"github.com/matzehuels/ggframe/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "ggframe"

	envRedisURL = "GGFRAME_REDIS_URL"
	envMongoURI = "GGFRAME_MONGO_URI"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ggframe lays out multi-panel figures",
		Long: `ggframe computes the frame of statistical graphics: panel grids, titles,
axes, legends and strips, aligned across composed plots. Figures are
declared in TOML, YAML or JSON files.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.Logger.GetLevel() <= log.DebugLevel {
				hooks := observability.NewLogHooks(c.Logger)
				observability.SetPipelineHooks(hooks)
				observability.SetCacheHooks(hooks)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner over the local file cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/ggframe/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// basePath derives the base output path from the output and input paths.
// Without output, the input extension is stripped. A known format
// extension on output is stripped as well.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, ext := range knownSuffixes {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// knownSuffixes lists output suffixes, longest match first.
var knownSuffixes = []string{".tree.svg", ".svg", ".png", ".pdf", ".layout.json", ".json", ".dot"}

// outputExtensions maps formats to file suffixes. Reports get their own
// suffix so they never overwrite a JSON figure file.
var outputExtensions = map[string]string{
	pipeline.FormatSVG:  ".svg",
	pipeline.FormatPNG:  ".png",
	pipeline.FormatPDF:  ".pdf",
	pipeline.FormatJSON: ".layout.json",
	pipeline.FormatTree: ".tree.svg",
	pipeline.FormatDOT:  ".dot",
}

// outputPath returns the file a format is written to.
func outputPath(base, format string) string {
	return base + outputExtensions[format]
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
