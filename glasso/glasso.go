package glasso

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/robnet/penalty"
)

// Defaults for the blockwise coordinate-descent solver.
const (
	// DefaultMaxSweeps bounds the outer column sweeps per penalty value.
	DefaultMaxSweeps = 100

	// DefaultTol stops the outer loop once the largest W update falls below
	// Tol times the mean |off-diagonal| of Sigma.
	DefaultTol = 1e-4

	// pivotGuard keeps inner-loop divisions away from zero pivots.
	pivotGuard = 1e-12
)

var (
	// ErrNilCovariance indicates a nil covariance input.
	ErrNilCovariance = errors.New("glasso: nil covariance matrix")

	// ErrBadPath indicates a supplied lambda sequence that is empty, has a
	// negative entry, or is not non-increasing.
	ErrBadPath = errors.New("glasso: lambda sequence must be non-negative and decreasing")
)

// Options configures the solver.
//
// Fields:
//   - MaxSweeps — outer sweep cap per penalty (DefaultMaxSweeps when 0).
//   - Tol       — relative convergence tolerance (DefaultTol when 0).
//   - NLambda   — grid size for a self-built path (penalty.DefaultNLambda when 0).
//   - MinRatio  — min/max ratio for a self-built path (penalty.DefaultMinRatio when 0).
type Options struct {
	MaxSweeps int
	Tol       float64
	NLambda   int
	MinRatio  float64
}

// DefaultOptions returns the recommended solver configuration.
func DefaultOptions() Options {
	return Options{
		MaxSweeps: DefaultMaxSweeps,
		Tol:       DefaultTol,
		NLambda:   penalty.DefaultNLambda,
		MinRatio:  penalty.DefaultMinRatio,
	}
}

// Result bundles one precision-matrix candidate per realized penalty value.
type Result struct {
	// Lambdas is the penalty sequence actually used, largest first. It may
	// differ from the caller's request (e.g. a self-built or degenerate
	// path); consumers must index candidates by this sequence.
	Lambdas []float64

	// Thetas holds the estimated precision matrices, Thetas[i] ↔ Lambdas[i].
	Thetas []*mat.SymDense

	// Ws holds the regularized covariance estimates W = Θ⁻¹ the solver
	// maintained, Ws[i] ↔ Lambdas[i]. The coefficient stage consumes these
	// as its Gram matrices.
	Ws []*mat.SymDense
}

// Solver runs the graphical lasso; the zero value uses DefaultOptions.
// It is stateless across calls and safe for concurrent use.
type Solver struct {
	Opts Options
}

// SolvePath estimates one sparse precision matrix per penalty value, warm
// starting down the (decreasing) path. A nil lambdas builds a path from
// sigma via penalty.GlassoPath; the realized sequence is reported in the
// Result.
func (s Solver) SolvePath(sigma *mat.SymDense, lambdas []float64) (*Result, error) {
	if sigma == nil {
		return nil, ErrNilCovariance
	}
	opts := s.Opts.withDefaults()

	if lambdas == nil {
		var err error
		lambdas, err = penalty.GlassoPath(sigma, opts.NLambda, opts.MinRatio)
		if err != nil {
			return nil, fmt.Errorf("SolvePath: %w", err)
		}
	} else if err := validatePath(lambdas); err != nil {
		return nil, err
	}

	p := sigma.SymmetricDim()
	res := &Result{
		Lambdas: append([]float64(nil), lambdas...),
		Thetas:  make([]*mat.SymDense, len(lambdas)),
		Ws:      make([]*mat.SymDense, len(lambdas)),
	}

	// Warm start: the regression coefficients of every column survive from
	// one penalty to the next.
	beta := mat.NewDense(p, p, nil)
	for i, lambda := range lambdas {
		theta, w := solveOne(sigma, lambda, beta, opts)
		res.Thetas[i] = theta
		res.Ws[i] = w
	}
	return res, nil
}

// solveOne runs blockwise coordinate descent at a single penalty. beta is
// both warm-start input and output (column j holds the p-1 regression
// coefficients of column j, stored with a zero at row j).
func solveOne(sigma *mat.SymDense, lambda float64, beta *mat.Dense, opts Options) (theta, w *mat.SymDense) {
	p := sigma.SymmetricDim()
	if p == 1 {
		t := mat.NewSymDense(1, []float64{1 / (sigma.At(0, 0) + lambda)})
		wv := mat.NewSymDense(1, []float64{sigma.At(0, 0) + lambda})
		return t, wv
	}

	// W starts at Sigma with an inflated diagonal.
	wd := mat.NewDense(p, p, nil)
	offSum := 0.0
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			wd.Set(i, j, sigma.At(i, j))
			if i != j {
				offSum += math.Abs(sigma.At(i, j))
			}
		}
		wd.Set(i, i, sigma.At(i, i)+lambda)
	}
	meanOff := offSum / float64(p*(p-1))
	thresh := opts.Tol * meanOff
	if thresh == 0 {
		thresh = opts.Tol
	}

	b := make([]float64, p) // working copy of column j's coefficients
	for sweep := 0; sweep < opts.MaxSweeps; sweep++ {
		maxDelta := 0.0
		for j := 0; j < p; j++ {
			for k := 0; k < p; k++ {
				b[k] = beta.At(k, j)
			}
			lassoColumn(wd, sigma, j, lambda, b)
			// w12 = W11 · b, written symmetrically into row/col j.
			for i := 0; i < p; i++ {
				if i == j {
					continue
				}
				wij := 0.0
				for k := 0; k < p; k++ {
					if k == j {
						continue
					}
					wij += wd.At(i, k) * b[k]
				}
				if d := math.Abs(wij - wd.At(i, j)); d > maxDelta {
					maxDelta = d
				}
				wd.Set(i, j, wij)
				wd.Set(j, i, wij)
			}
			for k := 0; k < p; k++ {
				beta.Set(k, j, b[k])
			}
		}
		if maxDelta < thresh {
			break
		}
	}

	// Recover Theta from W and the final regression coefficients.
	theta = mat.NewSymDense(p, nil)
	diag := make([]float64, p)
	for j := 0; j < p; j++ {
		dot := 0.0
		for k := 0; k < p; k++ {
			dot += wd.At(j, k) * beta.At(k, j)
		}
		diag[j] = 1 / math.Max(wd.At(j, j)-dot, pivotGuard)
	}
	for j := 0; j < p; j++ {
		theta.SetSym(j, j, diag[j])
		for i := j + 1; i < p; i++ {
			// Average the two asymmetric recoveries.
			tij := -(beta.At(i, j)*diag[j] + beta.At(j, i)*diag[i]) / 2
			theta.SetSym(i, j, tij)
		}
	}

	w = mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			w.SetSym(i, j, wd.At(i, j))
		}
	}
	return theta, w
}

// lassoColumn solves the column-j lasso subproblem by coordinate descent:
// min ½ bᵀW₁₁b − s₁₂ᵀb + λ‖b‖₁, updating b in place (entry j stays 0).
func lassoColumn(wd *mat.Dense, sigma *mat.SymDense, j int, lambda float64, b []float64) {
	p := len(b)
	b[j] = 0
	for it := 0; it < DefaultMaxSweeps; it++ {
		maxDelta := 0.0
		for k := 0; k < p; k++ {
			if k == j {
				continue
			}
			// Partial residual correlation of coordinate k.
			rho := sigma.At(k, j)
			for l := 0; l < p; l++ {
				if l == j || l == k {
					continue
				}
				rho -= wd.At(k, l) * b[l]
			}
			next := softThreshold(rho, lambda) / math.Max(wd.At(k, k), pivotGuard)
			if d := math.Abs(next - b[k]); d > maxDelta {
				maxDelta = d
			}
			b[k] = next
		}
		if maxDelta < innerTol {
			return
		}
	}
}

// innerTol stops the inner coordinate-descent loop.
const innerTol = 1e-6

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
	if o.MaxSweeps <= 0 {
		o.MaxSweeps = DefaultMaxSweeps
	}
	if o.Tol <= 0 {
		o.Tol = DefaultTol
	}
	if o.NLambda <= 0 {
		o.NLambda = penalty.DefaultNLambda
	}
	if o.MinRatio <= 0 {
		o.MinRatio = penalty.DefaultMinRatio
	}
	return o
}
