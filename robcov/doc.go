// Package robcov estimates covariance, correlation, and cross-covariance
// from data matrices that may contain rowwise or cellwise outliers.
//
// 🚀 What is robcov?
//
//	Four estimation strategies behind one contract:
//	  • Default — ordinary empirical covariance / correlation
//	  • Winsor  — median/MAD standardization plus pairwise winsorized
//	    correlations, rescaled by robust dispersions and projected to the
//	    nearest positive-semidefinite matrix
//	  • Wrap    — a bounded (wrapping) transform applied per column before
//	    ordinary moments, suppressing extreme cells smoothly
//	  • DDC     — cellwise outlier detection and imputation first, then
//	    ordinary moments on the cleaned matrix
//
// The package also exports the robust primitives the strategies are built
// from — Median, MAD, CorrWinsorized, NearestPSD, ImputeCellwise — so that
// callers can compose their own estimators.
//
// Unknown methods are rejected at validation time (ErrUnknownMethod); the
// only sanctioned degradation is DDC on a single-column matrix, which skips
// the cellwise step with a warning because cellwise detection needs at
// least two columns to predict a cell from its neighbours.
//
// Complexity: Default and Wrap are O(n·p²); Winsor and DDC are O(n·p²) with
// a larger constant from the pairwise loops; NearestPSD is O(p³).
package robcov
