// SPDX-License-Identifier: MIT

package pest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aleaf/pestools-1/correlation"
	"github.com/aleaf/pestools-1/covariance"
	"github.com/aleaf/pestools-1/jco"
	"github.com/aleaf/pestools-1/matrix"
)

// ErrNoStats is returned when an Analysis has no StatsSource.
var ErrNoStats = errors.New("pest: no statistics source")

// Analysis memoises the uncertainty products of one run.
type Analysis struct {
	id     uuid.UUID
	run    Run
	src    StatsSource
	codec  []jco.Option
	engine *covariance.Engine
	log    *slog.Logger

	jac  memo[*matrix.Labeled]
	est  memo[*covariance.Estimate]
	corr memo[*matrix.Labeled]
}

// NewAnalysis prepares an analysis of run. Nothing is read until a product is requested.
// src may be nil when only the Jacobian is needed.
func NewAnalysis(run Run, src StatsSource, opts ...Option) *Analysis {
	o := gatherOptions(opts...)
	id := uuid.New()
	log := o.logger.With(slog.String("analysis_id", id.String()), slog.String("run", run.String()))

	engine := o.engine
	if engine == nil {
		engine = covariance.New(append(o.covOpts, covariance.WithLogger(log))...)
	}

	return &Analysis{
		id:     id,
		run:    run,
		src:    src,
		codec:  append(o.codec, jco.WithLogger(log)),
		engine: engine,
		log:    log,
	}
}

// ID identifies the analysis in log records.
func (a *Analysis) ID() uuid.UUID { return a.id }

// Run returns the analysed run.
func (a *Analysis) Run() Run { return a.run }

// Jacobian decodes the run's .jco file once.
func (a *Analysis) Jacobian() (*matrix.Labeled, error) {
	return a.jac.get(func() (*matrix.Labeled, error) {
		path := a.run.JacobianFile()
		m, err := jco.DecodeFile(path, a.codec...)
		if err != nil {
			a.log.Error("jacobian decode failed", slog.String("path", path), slog.Any("error", err))
			return nil, fmt.Errorf("pest: jacobian: %w", err)
		}
		a.log.Info("jacobian loaded", slog.Int("observations", m.Rows()), slog.Int("parameters", m.Cols()))

		return m, nil
	})
}

// Estimate returns the covariance estimate with its dof, scale and conditioning.
func (a *Analysis) Estimate(ctx context.Context) (*covariance.Estimate, error) {
	return a.est.get(func() (*covariance.Estimate, error) {
		jac, err := a.Jacobian()
		if err != nil {
			return nil, err
		}
		if a.src == nil {
			return nil, ErrNoStats
		}
		stats, err := a.src.Stats(ctx)
		if err != nil {
			return nil, fmt.Errorf("pest: statistics: %w", err)
		}

		est, err := a.engine.Estimate(jac, stats.Weights, stats.Objective)
		if err != nil {
			a.log.Error("covariance failed", slog.Any("error", err))
			return nil, fmt.Errorf("pest: covariance: %w", err)
		}
		a.log.Info("covariance computed",
			slog.Int("dof", est.DOF),
			slog.Float64("rcond", est.RCond),
			slog.String("solver", string(est.Solver)),
		)

		return est, nil
	})
}

// Covariance returns the parameter covariance matrix.
func (a *Analysis) Covariance(ctx context.Context) (*matrix.Labeled, error) {
	est, err := a.Estimate(ctx)
	if err != nil {
		return nil, err
	}

	return est.Covariance, nil
}

// Correlation returns the parameter correlation matrix.
func (a *Analysis) Correlation(ctx context.Context) (*matrix.Labeled, error) {
	return a.corr.get(func() (*matrix.Labeled, error) {
		cov, err := a.Covariance(ctx)
		if err != nil {
			return nil, err
		}
		corr, err := correlation.Normalize(cov)
		if err != nil {
			a.log.Error("correlation failed", slog.Any("error", err))
			return nil, fmt.Errorf("pest: correlation: %w", err)
		}

		return corr, nil
	})
}
