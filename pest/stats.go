// SPDX-License-Identifier: MIT

package pest

import "context"

// Stats are the run statistics the covariance needs.
// Weights are ordered like the Jacobian's rows.
type Stats struct {
	Objective float64   // phi, the weighted sum of squared residuals
	Weights   []float64 // one non-negative weight per observation
}

// StatsSource supplies the statistics of a run, typically by reading its
// control and residual files.
type StatsSource interface {
	Stats(ctx context.Context) (Stats, error)
}

// StaticStats is a StatsSource returning fixed values.
type StaticStats Stats

// Stats returns s with a copy of its weights.
func (s StaticStats) Stats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	return Stats{Objective: s.Objective, Weights: append([]float64(nil), s.Weights...)}, nil
}

// StatsFunc adapts a function to StatsSource.
type StatsFunc func(ctx context.Context) (Stats, error)

// Stats calls f.
func (f StatsFunc) Stats(ctx context.Context) (Stats, error) { return f(ctx) }
