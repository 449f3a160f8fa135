// SPDX-License-Identifier: MIT

package pest

import (
	"log/slog"

	"github.com/aleaf/pestools-1/config"
	"github.com/aleaf/pestools-1/covariance"
	"github.com/aleaf/pestools-1/jco"
	"github.com/aleaf/pestools-1/logging"
)

const (
	panicNilEngine = "pest: WithEngine: nil engine"
	panicNilConfig = "pest: FromConfig: nil config"
)

// Option configures an Analysis.
type Option func(*options)

type options struct {
	codec   []jco.Option
	covOpts []covariance.Option
	engine  *covariance.Engine
	logger  *slog.Logger
}

// WithCodecOptions passes opts to the Jacobian decoder. Later calls append.
func WithCodecOptions(opts ...jco.Option) Option {
	cp := append([]jco.Option(nil), opts...)
	return func(o *options) { o.codec = append(o.codec, cp...) }
}

// WithCovarianceOptions configures the engine built by NewAnalysis.
// Ignored when WithEngine is given.
func WithCovarianceOptions(opts ...covariance.Option) Option {
	cp := append([]covariance.Option(nil), opts...)
	return func(o *options) { o.covOpts = append(o.covOpts, cp...) }
}

// WithEngine uses e instead of an engine built from covariance options.
// e keeps its own logger.
func WithEngine(e *covariance.Engine) Option {
	if e == nil {
		panic(panicNilEngine)
	}

	return func(o *options) { o.engine = e }
}

// WithLogger sets the logger; records carry the analysis ID and run.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// FromConfig applies the codec and covariance sections of cfg.
func FromConfig(cfg *config.Config) Option {
	if cfg == nil {
		panic(panicNilConfig)
	}
	codec := cfg.CodecOptions()
	cov := cfg.CovarianceOptions()

	return func(o *options) {
		o.codec = append(o.codec, codec...)
		o.covOpts = append(o.covOpts, cov...)
	}
}

func gatherOptions(user ...Option) options {
	o := options{logger: logging.Discard()}
	for _, set := range user {
		set(&o)
	}

	return o
}
