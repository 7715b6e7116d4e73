// Package robcov: sentinel error set. All public operations return these
// sentinels (possibly wrapped with fmt.Errorf("op: %w", ...)); tests match
// them via errors.Is. Panics are reserved for programmer errors in private
// helpers.

package robcov

import "errors"

var (
	// ErrNilMatrix indicates a nil *mat.Dense input.
	ErrNilMatrix = errors.New("robcov: nil data matrix")

	// ErrBadDimensions indicates an empty data matrix (n < 1 or p < 1).
	ErrBadDimensions = errors.New("robcov: matrix must have n >= 1 rows and p >= 1 columns")

	// ErrDimensionMismatch indicates len(y) != rows(X) for a cross-covariance.
	ErrDimensionMismatch = errors.New("robcov: response length does not match row count")

	// ErrUnknownMethod indicates an estimation method outside the declared
	// enum. Rejected at validation time; there is no silent fallback.
	ErrUnknownMethod = errors.New("robcov: unknown estimation method")

	// ErrEigenFailed indicates that the symmetric eigendecomposition inside
	// the nearest-PSD projection did not converge.
	ErrEigenFailed = errors.New("robcov: eigendecomposition failed")
)
