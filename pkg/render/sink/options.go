package sink

import "github.com/matzehuels/ggframe/pkg/backend"

// Option configures a sink.
type Option func(*options)

type options struct {
	cfg       backend.Config
	embedFont bool
	scale     float64
}

// WithConfig sets the backend config.
func WithConfig(cfg backend.Config) Option { return func(o *options) { o.cfg = cfg } }

// WithEmbeddedFont embeds the font as a data URL in SVG output so the
// file renders the same without the font installed.
func WithEmbeddedFont() Option { return func(o *options) { o.embedFont = true } }

// WithScale multiplies the PNG resolution (default 1).
func WithScale(s float64) Option {
	return func(o *options) {
		if s > 0 {
			o.scale = s
		}
	}
}

func newOptions(opts []Option) options {
	o := options{cfg: backend.NewConfig(), scale: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
