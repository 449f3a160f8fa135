// SPDX-License-Identifier: MIT

package covariance

import (
	"fmt"
	"math"

	"github.com/aleaf/pestools-1/matrix"
	"github.com/aleaf/pestools-1/matrix/ops"
)

const opCompute = "covariance.Compute"

// Engine computes parameter covariance matrices. The zero value is not usable; call New.
type Engine struct {
	o options
}

// Estimate is a covariance matrix together with the quantities that produced it.
type Estimate struct {
	Covariance *matrix.Labeled // square, labelled by parameter names
	DOF        int             // positively weighted observations minus parameters
	Scale      float64         // phi / DOF
	RCond      float64         // reciprocal condition estimate of JᵀQJ
	Solver     ops.Solver      // factorization used to invert JᵀQJ
}

// New returns an Engine configured by opts.
func New(opts ...Option) *Engine {
	return &Engine{o: gatherOptions(opts...)}
}

// Compute is a shorthand for New(opts...).Compute(jac, weights, phi).
func Compute(jac *matrix.Labeled, weights []float64, phi float64, opts ...Option) (*matrix.Labeled, error) {
	return New(opts...).Compute(jac, weights, phi)
}

// Compute returns phi/dof · (JᵀQJ)⁻¹ labelled by the Jacobian's column names.
// See Estimate for the error contract.
func (e *Engine) Compute(jac *matrix.Labeled, weights []float64, phi float64) (*matrix.Labeled, error) {
	est, err := e.Estimate(jac, weights, phi)
	if err != nil {
		return nil, err
	}

	return est.Covariance, nil
}

// Estimate computes the covariance and reports dof, scale, rcond and solver.
// Blueprint:
//
//	Stage 1 (Validate): jac non-nil and finite; weights aligned, finite, ≥ 0;
//	                    phi finite, ≥ 0; optional label alignment.
//	Stage 2 (Structure): rows > cols (ErrUnderdetermined), then
//	                     #{w > 0} > cols (ErrInsufficientDOF).
//	Stage 3 (Normal matrix): Jw = diag(w)·J; A = Jwᵀ·Jw = JᵀQJ.
//	Stage 4 (Invert): ops.InvertSPD(A, rcondMin) → *SingularMatrixError below threshold.
//	Stage 5 (Scale): Cov = (phi/dof)·A⁻¹, labelled (params, params).
//
// All failures happen before a result is built; there is no partial output.
// Complexity: O(n·p² + p³) for n observations and p parameters.
func (e *Engine) Estimate(jac *matrix.Labeled, weights []float64, phi float64) (*Estimate, error) {
	// Stage 1
	if jac == nil {
		return nil, fmt.Errorf("%s: %w", opCompute, matrix.ErrNilMatrix)
	}
	n, p := jac.Rows(), jac.Cols()
	if len(weights) != n {
		return nil, fmt.Errorf("%s: %d weights for %d observations: %w", opCompute, len(weights), n, ErrWeightCount)
	}
	nonZero := 0
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("%s: weight %d (%v): %w", opCompute, i, w, ErrInvalidWeight)
		}
		if w > 0 {
			nonZero++
		}
	}
	if math.IsNaN(phi) || math.IsInf(phi, 0) || phi < 0 {
		return nil, fmt.Errorf("%s: objective %v: %w", opCompute, phi, ErrInvalidObjective)
	}
	if err := matrix.ValidateFinite(jac.Dense().RawRowMajor()); err != nil {
		return nil, fmt.Errorf("%s: jacobian: %w", opCompute, err)
	}
	if e.o.observations != nil {
		if err := matrix.ValidateSameLabels(jac.RowNames(), e.o.observations); err != nil {
			return nil, fmt.Errorf("%s: observations: %w", opCompute, err)
		}
	}
	if e.o.parameters != nil {
		if err := matrix.ValidateSameLabels(jac.ColNames(), e.o.parameters); err != nil {
			return nil, fmt.Errorf("%s: parameters: %w", opCompute, err)
		}
	}

	// Stage 2
	if n <= p {
		return nil, fmt.Errorf("%s: %d observations for %d parameters: %w", opCompute, n, p, ErrUnderdetermined)
	}
	dof := nonZero - p
	if dof <= 0 {
		return nil, fmt.Errorf("%s: %d weighted observations for %d parameters: %w", opCompute, nonZero, p, ErrInsufficientDOF)
	}

	// Stage 3
	jw, err := jac.ScaleRows(weights)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompute, err)
	}
	normal, err := jw.T().Mul(jw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompute, err)
	}

	// Stage 4
	inv, err := ops.InvertSPD(normal.Dense(), e.o.rcondMin)
	if err != nil {
		e.o.logger.Debug("normal matrix inversion failed", "parameters", p, "error", err)
		return nil, fmt.Errorf("%s: %w", opCompute, err)
	}
	if inv.Solver != ops.SolverCholesky {
		e.o.logger.Warn("normal matrix is not positive definite; used LU fallback",
			"parameters", p, "rcond", inv.RCond)
	}

	// Stage 5
	scale := phi / float64(dof)
	scaled, err := matrix.Scale(inv.Inv, scale)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompute, err)
	}
	params := jac.ColNames()
	cov, err := matrix.NewLabeledFromDense(scaled, params, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompute, err)
	}
	e.o.logger.Debug("computed parameter covariance",
		"observations", n, "weighted", nonZero, "parameters", p, "dof", dof,
		"scale", scale, "rcond", inv.RCond, "solver", string(inv.Solver))

	return &Estimate{
		Covariance: cov,
		DOF:        dof,
		Scale:      scale,
		RCond:      inv.RCond,
		Solver:     inv.Solver,
	}, nil
}
