// Package stepwise: sentinel error set. Input errors surface at INIT,
// before any expensive computation runs; tests match them via errors.Is.

package stepwise

import "errors"

var (
	// ErrNilData indicates a nil predictor matrix.
	ErrNilData = errors.New("stepwise: nil data matrix")

	// ErrDimensionMismatch indicates len(y) != rows(X), or a prediction
	// matrix whose column count differs from the fitted model.
	ErrDimensionMismatch = errors.New("stepwise: dimension mismatch")

	// ErrBadFoldCount indicates K < 2 or K > n.
	ErrBadFoldCount = errors.New("stepwise: fold count must satisfy 2 <= K <= n")

	// ErrBadFolds indicates a supplied fold assignment that is not an exact
	// K-part partition of the row indices. Fatal; never retried.
	ErrBadFolds = errors.New("stepwise: fold assignment must partition the rows into K non-empty parts")

	// ErrNotFitted indicates Predict was called on a zero-value model.
	ErrNotFitted = errors.New("stepwise: model has not been fitted")
)
