package precision

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/robnet/glasso"
	"github.com/katalvlaran/robnet/penalty"
	"github.com/katalvlaran/robnet/robcov"
)

// GraphSolver abstracts the graphical-lasso primitive so callers can swap
// in their own; glasso.Solver is the default implementation.
type GraphSolver interface {
	SolvePath(sigma *mat.SymDense, lambdas []float64) (*glasso.Result, error)
}

// ErrNilMatrix indicates a nil data matrix passed to Select.
var ErrNilMatrix = errors.New("precision: nil data matrix")

// Options configures Select.
//
// Fields:
//   - Method, Correlation — covariance estimation (see robcov).
//   - Criterion           — scoring rule for candidates.
//   - NLambda, MinRatio   — path grid when Lambdas is nil.
//   - Lambdas             — optional explicit penalty path (decreasing);
//     nil means build one from the covariance.
//   - Standardize         — center/scale columns before estimation.
//   - Center, Scale       — standardization pair; nil picks mean/sd for
//     MethodDefault and median/MAD otherwise.
//   - Solver              — graphical-lasso implementation; nil means the
//     built-in blockwise coordinate-descent solver.
//   - Logger              — warning-level signals; nil means no-op.
type Options struct {
	Method      robcov.Method
	Correlation bool
	Criterion   Criterion
	NLambda     int
	MinRatio    float64
	Lambdas     []float64
	Standardize bool
	Center      robcov.LocFunc
	Scale       robcov.LocFunc
	Solver      GraphSolver
	Logger      *zap.Logger
}

// DefaultOptions selects with the empirical covariance, BIC scoring, and
// the default path grid.
func DefaultOptions() Options {
	return Options{
		Method:      robcov.MethodDefault,
		Criterion:   CriterionBIC,
		NLambda:     penalty.DefaultNLambda,
		MinRatio:    penalty.DefaultMinRatio,
		Standardize: true,
	}
}

// Selection is the outcome of a precision-matrix search.
type Selection struct {
	// Theta is the precision candidate at BestLambda.
	Theta *mat.SymDense

	// W is the regularized covariance paired with Theta; the coefficient
	// stage consumes it as a Gram matrix.
	W *mat.SymDense

	// Sigma is the covariance estimate the path was fitted to.
	Sigma *mat.SymDense

	// BestLambda is the selected penalty; always an element of Lambdas.
	BestLambda float64

	// BestIndex is the position of BestLambda in Lambdas.
	BestIndex int

	// Lambdas is the realized penalty path, largest first.
	Lambdas []float64

	// Scores holds one criterion value per path position.
	Scores []float64
}

// Select estimates a covariance for x, sweeps the graphical lasso down a
// penalty path, scores every candidate, and returns the minimizer. Ties
// break toward the first (largest-penalty, sparsest) minimizer.
func Select(x *mat.Dense, opts Options) (*Selection, error) {
	if x == nil {
		return nil, ErrNilMatrix
	}
	if !opts.Criterion.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownCriterion, opts.Criterion)
	}
	n, _ := x.Dims()

	work := x
	if opts.Standardize {
		center, scale := opts.LocPair()
		work, _, _ = robcov.Standardize(x, center, scale)
	}

	sigma, err := robcov.Estimate(work, robcov.Options{
		Method:      opts.Method,
		Correlation: opts.Correlation,
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("Select: %w", err)
	}

	lambdas := opts.Lambdas
	if lambdas == nil {
		nl := opts.NLambda
		if nl <= 0 {
			nl = penalty.DefaultNLambda
		}
		ratio := opts.MinRatio
		if ratio <= 0 {
			ratio = penalty.DefaultMinRatio
		}
		lambdas, err = penalty.GlassoPath(sigma, nl, ratio)
		if err != nil {
			return nil, fmt.Errorf("Select: %w", err)
		}
	}

	solver := opts.Solver
	if solver == nil {
		solver = glasso.Solver{}
	}
	res, err := solver.SolvePath(sigma, lambdas)
	if err != nil {
		return nil, fmt.Errorf("Select: %w", err)
	}

	// Score every candidate along the realized path; first minimizer wins.
	scores := make([]float64, len(res.Lambdas))
	bestIdx := 0
	bestScore := math.Inf(1)
	for i, theta := range res.Thetas {
		s, err := Score(theta, sigma, n, opts.Criterion)
		if err != nil {
			return nil, fmt.Errorf("Select: %w", err)
		}
		scores[i] = s
		if s < bestScore {
			bestScore = s
			bestIdx = i
		}
	}

	return &Selection{
		Theta:      res.Thetas[bestIdx],
		W:          res.Ws[bestIdx],
		Sigma:      sigma,
		BestLambda: res.Lambdas[bestIdx],
		BestIndex:  bestIdx,
		Lambdas:    res.Lambdas,
		Scores:     scores,
	}, nil
}

// LocPair resolves the standardization pair: caller-supplied functions win;
// otherwise mean/sd for the classical method and median/MAD for the robust
// ones. Exported because the stepwise fitter standardizes folds with the
// same rule.
func (o Options) LocPair() (center, scale robcov.LocFunc) {
	center, scale = o.Center, o.Scale
	if center == nil {
		if o.Method == robcov.MethodDefault {
			center = func(xs []float64) float64 { return stat.Mean(xs, nil) }
		} else {
			center = robcov.Median
		}
	}
	if scale == nil {
		if o.Method == robcov.MethodDefault {
			scale = func(xs []float64) float64 { return stat.StdDev(xs, nil) }
		} else {
			scale = robcov.RobustScale
		}
	}
	return center, scale
}
