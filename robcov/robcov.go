// Package robcov: the estimation facade dispatching over Method.

package robcov

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Estimate returns the p×p covariance (or correlation, per opts.Correlation)
// matrix of the columns of x under the configured robustness strategy.
//
// The result is freshly allocated and never aliased to x; x is not mutated.
// Winsorized estimates are projected to the nearest positive-semidefinite
// matrix before being returned, since pairwise construction does not
// guarantee PSD-ness. Rank deficiency (p > n) is expected and allowed.
//
// Errors: ErrNilMatrix, ErrBadDimensions, ErrUnknownMethod, ErrEigenFailed.
func Estimate(x *mat.Dense, opts Options) (*mat.SymDense, error) {
	n, p, err := validateMatrix(x)
	if err != nil {
		return nil, err
	}
	if !opts.Method.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, opts.Method)
	}

	switch opts.Method {
	case MethodDefault:
		return empiricalSym(x, opts.Correlation), nil

	case MethodWinsor:
		raw := winsorSym(x, opts.Correlation)
		return NearestPSD(raw)

	case MethodWrap:
		return empiricalSym(wrapMatrix(x), opts.Correlation), nil

	case MethodDDC:
		if p < ddcMinColumns {
			opts.logger().Warn("cellwise detection skipped: fewer than two columns",
				zap.Int("rows", n), zap.Int("cols", p))
			return empiricalSym(x, opts.Correlation), nil
		}
		return empiricalSym(ImputeCellwise(x), opts.Correlation), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, opts.Method)
}

// EstimateCross returns the length-p cross-covariance (or cross-correlation)
// vector between the columns of x and the response y, under the configured
// robustness strategy. Neither input is mutated.
//
// Errors: ErrNilMatrix, ErrBadDimensions, ErrDimensionMismatch,
// ErrUnknownMethod.
func EstimateCross(x *mat.Dense, y []float64, opts Options) ([]float64, error) {
	n, p, err := validateMatrix(x)
	if err != nil {
		return nil, err
	}
	if len(y) != n {
		return nil, fmt.Errorf("%w: len(y)=%d, rows=%d", ErrDimensionMismatch, len(y), n)
	}
	if !opts.Method.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, opts.Method)
	}

	switch opts.Method {
	case MethodDefault:
		return empiricalCross(x, y, opts.Correlation), nil

	case MethodWinsor:
		return winsorCross(x, y, opts.Correlation), nil

	case MethodWrap:
		return empiricalCross(wrapMatrix(x), wrapColumn(y), opts.Correlation), nil

	case MethodDDC:
		if p < ddcMinColumns {
			opts.logger().Warn("cellwise detection skipped: fewer than two columns",
				zap.Int("rows", n), zap.Int("cols", p))
			return empiricalCross(x, y, opts.Correlation), nil
		}
		return empiricalCross(ImputeCellwise(x), y, opts.Correlation), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, opts.Method)
}

// validateMatrix guards the shared input invariants and reports dimensions.
func validateMatrix(x *mat.Dense) (n, p int, err error) {
	if x == nil {
		return 0, 0, ErrNilMatrix
	}
	n, p = x.Dims()
	if n < 1 || p < 1 {
		return 0, 0, fmt.Errorf("%w: got %d×%d", ErrBadDimensions, n, p)
	}
	return n, p, nil
}

// empiricalSym is the classical product-moment matrix of the columns of x.
func empiricalSym(x *mat.Dense, correlation bool) *mat.SymDense {
	_, p := x.Dims()
	out := mat.NewSymDense(p, nil)
	if correlation {
		stat.CorrelationMatrix(out, x, nil)
	} else {
		stat.CovarianceMatrix(out, x, nil)
	}
	return out
}

// empiricalCross is the classical cross-moment vector between x and y.
func empiricalCross(x *mat.Dense, y []float64, correlation bool) []float64 {
	n, p := x.Dims()
	out := make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		if correlation {
			out[j] = stat.Correlation(col, y, nil)
		} else {
			out[j] = stat.Covariance(col, y, nil)
		}
	}
	return out
}

// winsorSym assembles the pairwise winsorized matrix: correlations directly,
// or correlations rescaled by the robust per-column dispersions.
func winsorSym(x *mat.Dense, correlation bool) *mat.SymDense {
	n, p := x.Dims()
	scale := make([]float64, p)
	cols := make([][]float64, p)
	for j := 0; j < p; j++ {
		cols[j] = make([]float64, n)
		mat.Col(cols[j], j, x)
		scale[j] = robustScale(cols[j])
	}
	out := mat.NewSymDense(p, nil)
	for j := 0; j < p; j++ {
		if correlation {
			out.SetSym(j, j, 1)
		} else {
			out.SetSym(j, j, scale[j]*scale[j])
		}
		for k := j + 1; k < p; k++ {
			r := CorrWinsorized(cols[j], cols[k])
			if !correlation {
				r *= scale[j] * scale[k]
			}
			out.SetSym(j, k, r)
		}
	}
	return out
}

// winsorCross mirrors winsorSym for a cross vector against the response.
func winsorCross(x *mat.Dense, y []float64, correlation bool) []float64 {
	n, p := x.Dims()
	sy := robustScale(y)
	out := make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		r := CorrWinsorized(col, y)
		if !correlation {
			r *= robustScale(col) * sy
		}
		out[j] = r
	}
	return out
}

// wrapMatrix applies the wrapping transform column by column, returning a
// fresh matrix.
func wrapMatrix(x *mat.Dense) *mat.Dense {
	n, p := x.Dims()
	out := mat.NewDense(n, p, nil)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		out.SetCol(j, wrapColumn(col))
	}
	return out
}
