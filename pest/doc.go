// SPDX-License-Identifier: MIT

// Package pest ties the kernels together for one PEST run.
//
// A Run identifies the run by basename and folder; the Jacobian is read from
// <folder>/<basename>.jco. Objective function and observation weights come
// from a StatsSource, normally backed by the control-file and residual
// readers, which live outside this module.
//
// An Analysis memoises the decoded Jacobian, the covariance and the
// correlation of its run. Each product is computed at most once, failures
// included, and the Analysis is safe for concurrent use.
//
//	run, _ := pest.NewRun("/models/columbia/columbia.pst")
//	a := pest.NewAnalysis(run, pest.StaticStats{Objective: phi, Weights: w})
//	corr, err := a.Correlation(ctx)
package pest
