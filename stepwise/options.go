// Package stepwise: functional configuration for Fit.
//
// Design goals (mirroring the rest of the module):
//   - Deterministic behavior: explicit rand source, no global state.
//   - Safe by construction: option constructors panic only on nonsensical
//     values (programmer error); data-dependent problems surface as errors
//     from Fit itself.
//   - Options fields are unexported; the public API consumes ...Option.

package stepwise

import (
	"math/rand"
	"runtime"

	"go.uber.org/zap"

	"github.com/katalvlaran/robnet/cdreg"
	"github.com/katalvlaran/robnet/penalty"
	"github.com/katalvlaran/robnet/precision"
	"github.com/katalvlaran/robnet/robcov"
)

// Defaults — single source of truth for Fit's zero-configuration behavior.
const (
	// DefaultFolds is the cross-validation fold count K.
	DefaultFolds = 5

	// DefaultSeed seeds the fold draw when no rand source is supplied, so
	// repeated invocations reproduce the same partition.
	DefaultSeed = 20

	// DefaultNorm is the coefficient penalty norm (lasso).
	DefaultNorm = cdreg.NormLasso
)

// Internal panic messages (no magic strings).
const (
	panicFoldsInvalid   = "stepwise: WithFolds: K must be >= 2"
	panicLambdasInvalid = "stepwise: path lengths must be >= 1"
	panicRatioInvalid   = "stepwise: WithMinRatio: ratio must lie in (0, 1)"
	panicWorkersInvalid = "stepwise: WithWorkers: count must be >= 1"
	panicNilRand        = "stepwise: WithRand: source must be non-nil"
)

// Option mutates the internal Fit configuration.
type Option func(*config)

type config struct {
	k           int
	kSet        bool
	folds       [][]int
	rng         *rand.Rand
	method      robcov.Method
	correlation bool
	criterion   precision.Criterion
	nLambda1    int
	nLambda2    int
	minRatio    float64
	norm        int
	workers     int
	graphSolver precision.GraphSolver
	regSolver   RegSolver
	logger      *zap.Logger
}

func defaultConfig() *config {
	return &config{
		k:         DefaultFolds,
		rng:       nil, // lazily seeded with DefaultSeed inside Fit
		method:    robcov.MethodDefault,
		criterion: precision.CriterionBIC,
		nLambda1:  penalty.DefaultNLambda,
		nLambda2:  penalty.DefaultNLambda,
		minRatio:  penalty.DefaultMinRatio,
		norm:      DefaultNorm,
		workers:   runtime.GOMAXPROCS(0),
		logger:    zap.NewNop(),
	}
}

// WithFolds sets the cross-validation fold count K. Panics if k < 2;
// k > n is data-dependent and reported by Fit as ErrBadFoldCount.
func WithFolds(k int) Option {
	if k < 2 {
		panic(panicFoldsInvalid)
	}
	return func(c *config) { c.k = k; c.kSet = true }
}

// WithFoldAssignment supplies an explicit fold partition of the row indices
// 0..n-1. Fit validates it exactly; an invalid partition is a fatal input
// error. The assignment is used as-is for both tuning stages.
func WithFoldAssignment(folds [][]int) Option {
	return func(c *config) { c.folds = folds }
}

// WithRand provides the random source used for the fold draw. Panics on a
// nil source; pass nothing to keep the deterministic default seed.
func WithRand(rng *rand.Rand) Option {
	if rng == nil {
		panic(panicNilRand)
	}
	return func(c *config) { c.rng = rng }
}

// WithMethod selects the covariance robustness strategy for every stage.
func WithMethod(m robcov.Method) Option {
	return func(c *config) { c.method = m }
}

// WithCorrelation switches the graph stage to correlation matrices.
func WithCorrelation(on bool) Option {
	return func(c *config) { c.correlation = on }
}

// WithCriterion selects the information criterion for the graph stage.
func WithCriterion(crit precision.Criterion) Option {
	return func(c *config) { c.criterion = crit }
}

// WithPathLengths sets the grid sizes of the graph (nlambda1) and
// coefficient (nlambda2) penalty paths. Panics if either is < 1.
func WithPathLengths(nlambda1, nlambda2 int) Option {
	if nlambda1 < 1 || nlambda2 < 1 {
		panic(panicLambdasInvalid)
	}
	return func(c *config) {
		c.nLambda1 = nlambda1
		c.nLambda2 = nlambda2
	}
}

// WithMinRatio sets the min/max ratio shared by both penalty paths.
// Panics unless 0 < ratio < 1.
func WithMinRatio(ratio float64) Option {
	if ratio <= 0 || ratio >= 1 {
		panic(panicRatioInvalid)
	}
	return func(c *config) { c.minRatio = ratio }
}

// WithNorm sets the coefficient penalty norm: cdreg.NormLasso or
// cdreg.NormRidge. Unsupported norms surface from Fit as
// penalty.ErrUnsupportedNorm — fail-fast, no silent fallback.
func WithNorm(norm int) Option {
	return func(c *config) { c.norm = norm }
}

// WithWorkers caps the number of folds evaluated concurrently. Panics if
// count < 1. The reduction is deterministic regardless of this value.
func WithWorkers(count int) Option {
	if count < 1 {
		panic(panicWorkersInvalid)
	}
	return func(c *config) { c.workers = count }
}

// WithGraphSolver substitutes the graphical-lasso implementation.
func WithGraphSolver(s precision.GraphSolver) Option {
	return func(c *config) { c.graphSolver = s }
}

// WithRegSolver substitutes the penalized-regression implementation.
func WithRegSolver(s RegSolver) Option {
	return func(c *config) { c.regSolver = s }
}

// WithLogger routes warning-level signals (degenerate paths, skipped
// cellwise detection) to the given logger instead of discarding them.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// locPair resolves the standardization pair for the configured method:
// mean/sd classically, median/MAD for the robust strategies.
func (c *config) locPair() (center, scale robcov.LocFunc) {
	return precision.Options{Method: c.method}.LocPair()
}
