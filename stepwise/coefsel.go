// Package stepwise: the coefficient-selection stage. One train/validation
// split is evaluated by standardizing on the held-in rows only, estimating
// their covariance, running the graphical lasso at the fixed graph penalty,
// sweeping the coefficient solver down the λ₂ path, and scoring every
// candidate by RMSPE on the held-out rows.

package stepwise

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/robnet/cdreg"
	"github.com/katalvlaran/robnet/glasso"
	"github.com/katalvlaran/robnet/robcov"
)

// RegSolver abstracts the penalized-regression primitive; cdreg.Solver is
// the default implementation.
type RegSolver interface {
	SolvePath(gram *mat.SymDense, crossCov []float64, lambdas []float64, norm int) ([][]float64, error)
}

// CoefSelection is the outcome of one coefficient-penalty search.
type CoefSelection struct {
	// Coefficients is the winning candidate, on the standardized scale.
	Coefficients []float64

	// BestLambda is the selected penalty; always an element of Lambdas.
	BestLambda float64

	// BestIndex is its position in Lambdas.
	BestIndex int

	// Lambdas is the evaluated penalty path, largest first.
	Lambdas []float64

	// Errors holds the validation RMSPE per path position.
	Errors []float64
}

// SelectCoefficients evaluates the λ₂ path on a single train/validation
// split, holding the graph penalty fixed, and returns the minimum-error
// candidate (first minimizer on ties). It is the single-split form of the
// cross-validated loop inside Fit.
func SelectCoefficients(xTrain *mat.Dense, yTrain []float64, xVal *mat.Dense, yVal []float64,
	graphLambda float64, lambdas []float64, opts ...Option) (*CoefSelection, error) {

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if xTrain == nil || xVal == nil {
		return nil, ErrNilData
	}
	nTr, p := xTrain.Dims()
	nVal, pVal := xVal.Dims()
	if len(yTrain) != nTr || len(yVal) != nVal || p != pVal {
		return nil, fmt.Errorf("%w: train %d×%d/%d, val %d×%d/%d",
			ErrDimensionMismatch, nTr, p, len(yTrain), nVal, pVal, len(yVal))
	}

	errs, betas, err := evaluateSplit(cfg, xTrain, yTrain, xVal, yVal, graphLambda, lambdas)
	if err != nil {
		return nil, err
	}

	best := firstMinimizer(errs)
	return &CoefSelection{
		Coefficients: betas[best],
		BestLambda:   lambdas[best],
		BestIndex:    best,
		Lambdas:      append([]float64(nil), lambdas...),
		Errors:       errs,
	}, nil
}

// evaluateSplit scores every λ₂ candidate on one split. Standardization
// factors come from the held-in rows alone and are applied verbatim to the
// held-out rows, so no validation information leaks into the fit.
func evaluateSplit(cfg *config, xTrain *mat.Dense, yTrain []float64, xVal *mat.Dense, yVal []float64,
	graphLambda float64, lambdas []float64) (errs []float64, betas [][]float64, err error) {

	center, scale := cfg.locPair()
	zTrain, xCenter, xScale := robcov.Standardize(xTrain, center, scale)
	zy, yCenter, yScale := robcov.StandardizeVec(yTrain, center, scale)
	zVal := applyStandardization(xVal, xCenter, xScale)

	covOpts := robcov.Options{Method: cfg.method, Logger: cfg.logger}
	sigma, err := robcov.Estimate(zTrain, covOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("coefficient stage: %w", err)
	}

	gs := cfg.graphSolver
	if gs == nil {
		gs = glasso.Solver{}
	}
	graphRes, err := gs.SolvePath(sigma, []float64{graphLambda})
	if err != nil {
		return nil, nil, fmt.Errorf("coefficient stage: %w", err)
	}
	gram := graphRes.Ws[0]

	cross, err := robcov.EstimateCross(zTrain, zy, covOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("coefficient stage: %w", err)
	}

	rs := cfg.regSolver
	if rs == nil {
		rs = cdreg.Solver{}
	}
	betas, err = rs.SolvePath(gram, cross, lambdas, cfg.norm)
	if err != nil {
		return nil, nil, fmt.Errorf("coefficient stage: %w", err)
	}

	errs = make([]float64, len(betas))
	for i, beta := range betas {
		errs[i] = rmspe(zVal, yVal, beta, yCenter, yScale)
	}
	return errs, betas, nil
}

// rmspe computes the root-mean-squared prediction error of a standardized
// candidate against raw held-out responses.
func rmspe(zVal *mat.Dense, yVal []float64, beta []float64, yCenter, yScale float64) float64 {
	n, p := zVal.Dims()
	sum := 0.0
	for i := 0; i < n; i++ {
		pred := 0.0
		for j := 0; j < p; j++ {
			pred += zVal.At(i, j) * beta[j]
		}
		pred = yCenter + yScale*pred
		d := yVal[i] - pred
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}

// firstMinimizer returns the index of the first strict minimum, i.e. the
// largest-penalty (sparsest) winner among ties on a decreasing path.
func firstMinimizer(vals []float64) int {
	best := 0
	bestVal := math.Inf(1)
	for i, v := range vals {
		if v < bestVal {
			bestVal = v
			best = i
		}
	}
	return best
}

// applyStandardization rescales columns by previously computed factors.
func applyStandardization(x *mat.Dense, centers, scales []float64) *mat.Dense {
	n, p := x.Dims()
	z := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			z.Set(i, j, (x.At(i, j)-centers[j])/scales[j])
		}
	}
	return z
}

// subsetRows copies the selected rows of x into a fresh matrix.
func subsetRows(x *mat.Dense, rows []int) *mat.Dense {
	_, p := x.Dims()
	out := mat.NewDense(len(rows), p, nil)
	for i, r := range rows {
		for j := 0; j < p; j++ {
			out.Set(i, j, x.At(r, j))
		}
	}
	return out
}

// subsetVec copies the selected entries of y into a fresh slice.
func subsetVec(y []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = y[r]
	}
	return out
}
