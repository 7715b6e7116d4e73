// Package robnet fits sparse, outlier-robust linear regression models in the
// low-sample-size regime (n ≤ p), guided by a sparse graphical model of the
// predictors.
//
// 🚀 What is robnet?
//
//	A pure-Go statistical library (built on gonum) that chains together:
//		• Robust covariance: empirical, winsorized, wrapped, cellwise-corrected
//		• Sparse precision matrices: graphical lasso with BIC/EBIC selection
//		• Penalty paths: log-spaced lambda grids with degenerate fallbacks
//		• Coefficients: covariance-form coordinate descent (lasso & ridge)
//		• Two-stage tuning: fix the graph penalty, cross-validate the
//		  coefficient penalty over K folds, refit on the full sample
//
// ✨ Why choose robnet?
//
//   - Robust by default – winsorization, wrapping and cellwise imputation
//     bound the influence of outliers before any second moment is computed
//   - Deterministic – explicit rand sources, no ambient global state
//   - Parallel where it matters – the K-fold loop fans out over errgroup
//     and reduces deterministically, independent of worker count
//   - Pluggable – the glasso and coordinate-descent solvers sit behind
//     small interfaces; bring your own if you have a faster one
//
// Under the hood, everything is organized into six subpackages:
//
//	robcov/    — covariance & correlation estimators, robust primitives
//	penalty/   — lambda-path construction for both tuning stages
//	glasso/    — graphical lasso solver (blockwise coordinate descent)
//	cdreg/     — penalized regression solver in covariance form
//	precision/ — information-criterion selection of the precision matrix
//	stepwise/  — K-fold two-stage fitter and the fitted-model predictor
//
// Typical flow:
//
//	X, y → robcov → precision (pick λ₁) → stepwise CV (pick λ₂) → Model → ŷ
//
// Dive into each package's doc.go for the numerical details, and into
// stepwise/example_test.go for an end-to-end fit.
//
//	go get github.com/katalvlaran/robnet
package robnet
