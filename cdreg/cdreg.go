package cdreg

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Defaults for the coordinate-descent loop.
const (
	// DefaultMaxIter bounds coordinate-descent passes per penalty value.
	DefaultMaxIter = 1000

	// DefaultTol stops a pass once the largest coefficient update is below it.
	DefaultTol = 1e-6

	// pivotGuard keeps divisions away from zero Gram diagonals.
	pivotGuard = 1e-12
)

// Norms accepted by SolvePath.
const (
	NormLasso = 1
	NormRidge = 2
)

var (
	// ErrNilGram indicates a nil Gram matrix.
	ErrNilGram = errors.New("cdreg: nil gram matrix")

	// ErrDimensionMismatch indicates len(crossCov) != dim(gram).
	ErrDimensionMismatch = errors.New("cdreg: cross-covariance length does not match gram dimension")

	// ErrBadPath indicates an empty, negative, or increasing penalty path.
	ErrBadPath = errors.New("cdreg: lambda sequence must be non-negative and decreasing")

	// ErrUnsupportedNorm indicates a penalty norm other than 1 or 2.
	ErrUnsupportedNorm = errors.New("cdreg: unsupported penalty norm")

	// ErrSingularGram indicates the ridge system (G + λI) could not be
	// factorized; with λ > 0 this only happens on a badly broken input.
	ErrSingularGram = errors.New("cdreg: gram matrix not positive definite")
)

// Options configures the solver; zero values fall back to the defaults.
type Options struct {
	MaxIter int
	Tol     float64
}

// DefaultOptions returns the recommended solver configuration.
func DefaultOptions() Options {
	return Options{MaxIter: DefaultMaxIter, Tol: DefaultTol}
}

// Solver solves penalized regression in covariance form; the zero value
// uses DefaultOptions. Stateless and safe for concurrent use.
type Solver struct {
	Opts Options
}

// SolvePath returns one coefficient vector per penalty value, in path
// order. norm selects NormLasso or NormRidge; any other value fails fast.
func (s Solver) SolvePath(gram *mat.SymDense, crossCov []float64, lambdas []float64, norm int) ([][]float64, error) {
	if gram == nil {
		return nil, ErrNilGram
	}
	p := gram.SymmetricDim()
	if len(crossCov) != p {
		return nil, fmt.Errorf("%w: len(c)=%d, p=%d", ErrDimensionMismatch, len(crossCov), p)
	}
	if err := validatePath(lambdas); err != nil {
		return nil, err
	}
	if norm != NormLasso && norm != NormRidge {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedNorm, norm)
	}
	opts := s.Opts.withDefaults()

	out := make([][]float64, len(lambdas))
	if norm == NormRidge {
		for i, lambda := range lambdas {
			b, err := ridgeSolve(gram, crossCov, lambda)
			if err != nil {
				return nil, err
			}
			out[i] = b
		}
		return out, nil
	}

	// Lasso: warm-start coordinate descent down the path.
	b := make([]float64, p)
	for i, lambda := range lambdas {
		lassoDescend(gram, crossCov, lambda, b, opts)
		out[i] = append([]float64(nil), b...)
	}
	return out, nil
}

// lassoDescend runs coordinate descent in place on b at a single penalty:
// b_k ← S(c_k − Σ_{l≠k} G_kl·b_l, λ) / G_kk.
func lassoDescend(gram *mat.SymDense, c []float64, lambda float64, b []float64, opts Options) {
	p := len(b)
	for it := 0; it < opts.MaxIter; it++ {
		maxDelta := 0.0
		for k := 0; k < p; k++ {
			rho := c[k]
			for l := 0; l < p; l++ {
				if l == k {
					continue
				}
				rho -= gram.At(k, l) * b[l]
			}
			next := softThreshold(rho, lambda) / math.Max(gram.At(k, k), pivotGuard)
			if d := math.Abs(next - b[k]); d > maxDelta {
				maxDelta = d
			}
			b[k] = next
		}
		if maxDelta < opts.Tol {
			return
		}
	}
}

// ridgeSolve returns the closed-form solution of (G + λI)β = c.
func ridgeSolve(gram *mat.SymDense, c []float64, lambda float64) ([]float64, error) {
	p := gram.SymmetricDim()
	a := mat.NewSymDense(p, nil)
	a.CopySym(gram)
	for i := 0; i < p; i++ {
		a.SetSym(i, i, a.At(i, i)+lambda)
	}
	var chol mat.Cholesky
	if !chol.Factorize(a) {
		return nil, ErrSingularGram
	}
	var sol mat.VecDense
	if err := chol.SolveVecTo(&sol, mat.NewVecDense(p, append([]float64(nil), c...))); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularGram, err)
	}
	out := make([]float64, p)
	copy(out, sol.RawVector().Data)
	return out, nil
}

// softThreshold is the lasso shrinkage operator S(z, λ).
func softThreshold(z, lambda float64) float64 {
	switch {
	case z > lambda:
		return z - lambda
	case z < -lambda:
		return z + lambda
	default:
		return 0
	}
}

// validatePath rejects empty, negative, or increasing lambda sequences.
func validatePath(lambdas []float64) error {
	if len(lambdas) == 0 {
		return ErrBadPath
	}
	for i, l := range lambdas {
		if l < 0 || math.IsNaN(l) {
			return fmt.Errorf("%w: lambda[%d]=%g", ErrBadPath, i, l)
		}
		if i > 0 && l > lambdas[i-1] {
			return fmt.Errorf("%w: increases at index %d", ErrBadPath, i)
		}
	}
	return nil
}

// withDefaults fills zero-valued options.
func (o Options) withDefaults() Options {
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultMaxIter
	}
	if o.Tol <= 0 {
		o.Tol = DefaultTol
	}
	return o
}
