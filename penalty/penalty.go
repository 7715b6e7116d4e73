package penalty

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Defaults - single source of truth for path construction.
const (
	// DefaultNLambda is the path length used when callers pass no explicit
	// grid size downstream.
	DefaultNLambda = 10

	// DefaultMinRatio relates the smallest to the largest penalty on a path.
	DefaultMinRatio = 0.01

	// ridgeFloor divides the L1 bound to obtain the L2 (ridge) upper bound:
	// ridge coefficients vanish only as λ → ∞, so the grid top is pushed
	// three decades higher than the lasso's closed-form bound.
	ridgeFloor = 1e-3

	// zeroTol decides when an off-diagonal or cross-covariance entry counts
	// as exactly zero for the degenerate single-element path.
	zeroTol = 0.0
)

var (
	// ErrNilCovariance indicates a nil covariance input.
	ErrNilCovariance = errors.New("penalty: nil covariance matrix")

	// ErrEmptyCross indicates an empty cross-covariance vector.
	ErrEmptyCross = errors.New("penalty: empty cross-covariance vector")

	// ErrBadLength indicates a requested path length below 1.
	ErrBadLength = errors.New("penalty: path length must be >= 1")

	// ErrBadRatio indicates a min/max ratio outside (0, 1).
	ErrBadRatio = errors.New("penalty: lambda-min ratio must lie in (0, 1)")

	// ErrUnsupportedNorm indicates a penalty norm other than 1 (lasso) or
	// 2 (ridge). This is a programmer error and fails fast; there is no
	// silent fallback to a default norm.
	ErrUnsupportedNorm = errors.New("penalty: unsupported penalty norm")
)

// GlassoPath builds the penalty path for the precision-matrix stage:
// λmax = max |off-diagonal entry| of cov, λmin = minRatio·λmax, nlambda
// values log-spaced and strictly decreasing.
//
// Degenerate case: an all-zero off-diagonal means no edge can enter the
// graph at any penalty, and the path collapses to the single value 0.
func GlassoPath(cov *mat.SymDense, nlambda int, minRatio float64) ([]float64, error) {
	if cov == nil {
		return nil, ErrNilCovariance
	}
	if err := validateGrid(nlambda, minRatio); err != nil {
		return nil, err
	}

	lambdaMax := 0.0
	p := cov.SymmetricDim()
	for i := 0; i < p; i++ {
		for j := i + 1; j < p; j++ {
			if a := math.Abs(cov.At(i, j)); a > lambdaMax {
				lambdaMax = a
			}
		}
	}
	if lambdaMax <= zeroTol {
		return []float64{0}, nil
	}
	return logSpaced(lambdaMax, minRatio*lambdaMax, nlambda), nil
}

// CoefficientPath builds the penalty path for the regression-coefficient
// stage from the cross-covariance between predictors and response.
//
//   - norm 1 (lasso): λmax = max |crossCov| — the smallest penalty at which
//     every coefficient is exactly zero.
//   - norm 2 (ridge): λmax = max |crossCov| / ridgeFloor.
//
// An all-zero cross-covariance collapses the path to [0].
func CoefficientPath(crossCov []float64, norm int, nlambda int, minRatio float64) ([]float64, error) {
	if len(crossCov) == 0 {
		return nil, ErrEmptyCross
	}
	if err := validateGrid(nlambda, minRatio); err != nil {
		return nil, err
	}
	if norm != 1 && norm != 2 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedNorm, norm)
	}

	bound := 0.0
	for _, c := range crossCov {
		if a := math.Abs(c); a > bound {
			bound = a
		}
	}
	if bound <= zeroTol {
		return []float64{0}, nil
	}
	if norm == 2 {
		bound /= ridgeFloor
	}
	return logSpaced(bound, minRatio*bound, nlambda), nil
}

// validateGrid guards the shared grid parameters.
func validateGrid(nlambda int, minRatio float64) error {
	if nlambda < 1 {
		return fmt.Errorf("%w: got %d", ErrBadLength, nlambda)
	}
	if minRatio <= 0 || minRatio >= 1 {
		return fmt.Errorf("%w: got %g", ErrBadRatio, minRatio)
	}
	return nil
}

// logSpaced returns m values log-uniform on [lo, hi], largest first.
// For m == 1 the single value is hi.
func logSpaced(hi, lo float64, m int) []float64 {
	out := make([]float64, m)
	if m == 1 {
		out[0] = hi
		return out
	}
	logHi, logLo := math.Log(hi), math.Log(lo)
	step := (logHi - logLo) / float64(m-1)
	for i := 0; i < m; i++ {
		out[i] = math.Exp(logHi - float64(i)*step)
	}
	// Pin the endpoints so hi and lo are hit exactly, not within rounding.
	out[0] = hi
	out[m-1] = lo
	return out
}
