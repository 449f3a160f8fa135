// SPDX-License-Identifier: MIT

package covariance

import (
	"io"
	"log/slog"
	"math"

	"github.com/aleaf/pestools-1/matrix/ops"
)

// DefaultRCondThreshold is the smallest accepted reciprocal condition number of JᵀQJ.
const DefaultRCondThreshold = ops.DefaultRCondThreshold

const panicRCondInvalid = "covariance: WithRCondThreshold: threshold must be finite and in [0, 1]"

// Option configures an Engine.
type Option func(*options)

type options struct {
	rcondMin     float64
	logger       *slog.Logger
	observations []string // optional identity list for Jacobian rows
	parameters   []string // optional identity list for Jacobian columns
}

// WithRCondThreshold sets the singularity threshold on the reciprocal condition number.
// Panics on values outside [0, 1].
func WithRCondThreshold(v float64) Option {
	if math.IsNaN(v) || v < 0 || v > 1 {
		panic(panicRCondInvalid)
	}

	return func(o *options) { o.rcondMin = v }
}

// WithLogger attaches a logger. The engine logs the solver choice at DEBUG and
// the LU fallback at WARN.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObservationNames requires Jacobian row labels to equal names positionally
// (case-insensitive).
func WithObservationNames(names []string) Option {
	cp := append([]string(nil), names...)
	return func(o *options) { o.observations = cp }
}

// WithParameterNames requires Jacobian column labels to equal names positionally
// (case-insensitive).
func WithParameterNames(names []string) Option {
	cp := append([]string(nil), names...)
	return func(o *options) { o.parameters = cp }
}

func gatherOptions(user ...Option) options {
	o := options{
		rcondMin: DefaultRCondThreshold,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
