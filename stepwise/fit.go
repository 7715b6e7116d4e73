// Package stepwise: the two-stage fitter.

package stepwise

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/robnet/cdreg"
	"github.com/katalvlaran/robnet/glasso"
	"github.com/katalvlaran/robnet/penalty"
	"github.com/katalvlaran/robnet/precision"
	"github.com/katalvlaran/robnet/robcov"
)

// Fit runs the full pipeline on (x, y): select the graph penalty once on
// the whole sample, cross-validate the coefficient penalty over K folds
// with the graph penalty held fixed, refit at the selected pair, and
// return the immutable fitted model.
//
// Input errors (dimensions, fold count, fold assignment) surface before
// any numerical work starts. Degenerate covariance structure is not an
// error: the affected penalty path collapses to [0] with a warning and the
// fit proceeds unpenalized.
func Fit(x *mat.Dense, y []float64, opts ...Option) (*Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	// INIT: everything cheap and fatal happens first.
	if x == nil {
		return nil, ErrNilData
	}
	n, p := x.Dims()
	if n < 1 || p < 1 {
		return nil, fmt.Errorf("%w: got %d×%d", ErrDimensionMismatch, n, p)
	}
	if len(y) != n {
		return nil, fmt.Errorf("%w: len(y)=%d, rows=%d", ErrDimensionMismatch, len(y), n)
	}
	folds := cfg.folds
	if folds != nil {
		if !cfg.kSet {
			cfg.k = len(folds)
		}
		if err := validateFolds(folds, n, cfg.k); err != nil {
			return nil, err
		}
	}
	if cfg.k < 2 || cfg.k > n {
		return nil, fmt.Errorf("%w: K=%d, n=%d", ErrBadFoldCount, cfg.k, n)
	}
	if folds == nil {
		rng := cfg.rng
		if rng == nil {
			rng = rand.New(rand.NewSource(DefaultSeed))
		}
		folds = drawFolds(n, cfg.k, rng)
	}
	if cfg.graphSolver == nil {
		cfg.graphSolver = glasso.Solver{}
	}
	if cfg.regSolver == nil {
		cfg.regSolver = cdreg.Solver{}
	}

	// Graph stage: one selection on the full sample fixes λ₁ for the rest
	// of the fit. The coefficient-stage CV error is therefore mildly
	// optimistic; a known property of the two-stage design.
	sel, err := precision.Select(x, precision.Options{
		Method:      cfg.method,
		Correlation: cfg.correlation,
		Criterion:   cfg.criterion,
		NLambda:     cfg.nLambda1,
		MinRatio:    cfg.minRatio,
		Standardize: true,
		Solver:      cfg.graphSolver,
		Logger:      cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("graph stage: %w", err)
	}
	graphLambda := sel.BestLambda

	// One λ₂ path, built from the full standardized sample, shared by all
	// folds so per-penalty errors are comparable across them.
	center, scale := cfg.locPair()
	zX, xCenter, xScale := robcov.Standardize(x, center, scale)
	zy, yCenter, yScale := robcov.StandardizeVec(y, center, scale)
	covOpts := robcov.Options{Method: cfg.method, Logger: cfg.logger}
	crossFull, err := robcov.EstimateCross(zX, zy, covOpts)
	if err != nil {
		return nil, fmt.Errorf("coefficient stage: %w", err)
	}
	coefPath, err := penalty.CoefficientPath(crossFull, cfg.norm, cfg.nLambda2, cfg.minRatio)
	if err != nil {
		return nil, fmt.Errorf("coefficient stage: %w", err)
	}
	if len(coefPath) == 1 && coefPath[0] == 0 {
		cfg.logger.Warn("cross-covariance is all zero: coefficient path collapsed to [0]",
			zap.Int("rows", n), zap.Int("cols", p))
	}

	// CV fan-out: one task per fold, no shared mutable state, and a
	// deterministic column-wise mean reduction afterwards.
	perFold := make([][]float64, cfg.k)
	var g errgroup.Group
	g.SetLimit(cfg.workers)
	for f := range folds {
		f := f
		g.Go(func() error {
			trainIdx, valIdx := split(n, folds[f])
			errs, _, err := evaluateSplit(cfg,
				subsetRows(x, trainIdx), subsetVec(y, trainIdx),
				subsetRows(x, valIdx), subsetVec(y, valIdx),
				graphLambda, coefPath)
			if err != nil {
				return fmt.Errorf("fold %d: %w", f, err)
			}
			perFold[f] = errs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	meanErrs := make([]float64, len(coefPath))
	for _, errs := range perFold {
		for i, e := range errs {
			meanErrs[i] += e
		}
	}
	for i := range meanErrs {
		meanErrs[i] /= float64(cfg.k)
	}
	bestIdx := firstMinimizer(meanErrs)
	coefLambda := coefPath[bestIdx]

	// Final fit: covariance → precision → coefficients on the full sample
	// at the selected penalty pair.
	sigmaFull, err := robcov.Estimate(zX, covOpts)
	if err != nil {
		return nil, fmt.Errorf("final fit: %w", err)
	}
	graphRes, err := cfg.graphSolver.SolvePath(sigmaFull, []float64{graphLambda})
	if err != nil {
		return nil, fmt.Errorf("final fit: %w", err)
	}
	betas, err := cfg.regSolver.SolvePath(graphRes.Ws[0], crossFull, []float64{coefLambda}, cfg.norm)
	if err != nil {
		return nil, fmt.Errorf("final fit: %w", err)
	}
	beta := betas[0]

	// Undo the standardization: rescale coefficients onto the raw data
	// scale and absorb the centers into the intercept.
	coefs := make([]float64, p)
	intercept := yCenter
	for j := 0; j < p; j++ {
		coefs[j] = beta[j] * yScale / xScale[j]
		intercept -= coefs[j] * xCenter[j]
	}

	return &Model{
		GraphLambda:  graphLambda,
		CoefLambda:   coefLambda,
		Coefficients: coefs,
		Intercept:    intercept,
		XCenter:      xCenter,
		XScale:       xScale,
		YCenter:      yCenter,
		YScale:       yScale,
		CoefPath:     coefPath,
		CVErrors:     meanErrs,
	}, nil
}
