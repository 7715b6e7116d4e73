package stepwise_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/robnet/robcov"
	"github.com/katalvlaran/robnet/stepwise"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// scenario bundles the synthetic regression design of the end-to-end tests:
// AR(1)-correlated Gaussian predictors, a sparse coefficient vector, and
// noise calibrated to a fixed signal-to-noise ratio.
type scenario struct {
	beta    []float64
	noiseSD float64
	rho     float64
	p       int
}

// newScenario fixes up to 5 non-zero coefficients and calibrates the noise
// scale so that Var(Xβ)/σ² = snr under the AR(1) covariance.
func newScenario(p int, rho, snr float64) *scenario {
	beta := make([]float64, p)
	for i := 0; i < 5 && i*3 < p; i++ {
		beta[i*3] = 1 // spread the active set across the correlation band
	}
	// Signal variance under AR(1): Σᵢⱼ βᵢβⱼ ρ^|i-j|.
	signalVar := 0.0
	for i := range beta {
		for j := range beta {
			if beta[i] != 0 && beta[j] != 0 {
				signalVar += beta[i] * beta[j] * math.Pow(rho, math.Abs(float64(i-j)))
			}
		}
	}
	return &scenario{
		beta:    beta,
		noiseSD: math.Sqrt(signalVar / snr),
		rho:     rho,
		p:       p,
	}
}

// draw samples n rows of predictors and responses.
func (sc *scenario) draw(n int, rng *rand.Rand) (*mat.Dense, []float64) {
	x := mat.NewDense(n, sc.p, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		prev := rng.NormFloat64()
		x.Set(i, 0, prev)
		for j := 1; j < sc.p; j++ {
			prev = sc.rho*prev + math.Sqrt(1-sc.rho*sc.rho)*rng.NormFloat64()
			x.Set(i, j, prev)
		}
		dot := 0.0
		for j, b := range sc.beta {
			dot += b * x.At(i, j)
		}
		y[i] = dot + sc.noiseSD*rng.NormFloat64()
	}
	return x, y
}

// contaminate flips a fraction of cells to large outliers, cellwise.
func contaminate(x *mat.Dense, fraction, magnitude float64, rng *rand.Rand) *mat.Dense {
	out := mat.DenseCopyOf(x)
	n, p := out.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			if rng.Float64() < fraction {
				out.Set(i, j, magnitude*math.Copysign(1, rng.NormFloat64()))
			}
		}
	}
	return out
}

// normalizedRMSPE evaluates a model on a test sample, scaled by the noise
// level so that perfect recovery scores exactly 1.
func normalizedRMSPE(t *testing.T, m *stepwise.Model, x *mat.Dense, y []float64, noiseSD float64) float64 {
	t.Helper()
	pred, err := m.Predict(x, true)
	require.NoError(t, err)
	sum := 0.0
	for i, v := range y {
		d := v - pred[i]
		sum += d * d
	}
	return math.Sqrt(sum/float64(len(y))) / noiseSD
}

// TestFit_EndToEndRecovery is the headline scenario: n=50, p=40, AR(1)
// ρ=0.5, SNR 1, K=5 with 10-point paths for both stages. The normalized
// test RMSPE must sit near its lower bound of 1.
func TestFit_EndToEndRecovery(t *testing.T) {
	sc := newScenario(40, 0.5, 1)
	rng := rand.New(rand.NewSource(3))
	xTrain, yTrain := sc.draw(50, rng)
	xTest, yTest := sc.draw(1000, rng)

	model, err := stepwise.Fit(xTrain, yTrain,
		stepwise.WithFolds(5),
		stepwise.WithPathLengths(10, 10),
	)
	require.NoError(t, err)
	require.Len(t, model.Coefficients, 40)
	assert.Contains(t, model.CoefPath, model.CoefLambda, "selected λ₂ is a path member")

	nrmspe := normalizedRMSPE(t, model, xTest, yTest, sc.noiseSD)
	assert.Greater(t, nrmspe, 0.95, "normalized RMSPE is bounded below by 1")
	assert.Less(t, nrmspe, 1.6, "fit must land near the noise floor")
}

// TestFit_DDCBeatsDefaultUnderContamination plants cellwise outliers in the
// training data: the cellwise-corrected fit must generalize better than the
// non-robust one on a clean test sample.
func TestFit_DDCBeatsDefaultUnderContamination(t *testing.T) {
	sc := newScenario(40, 0.5, 1)
	rng := rand.New(rand.NewSource(5))
	xClean, yTrain := sc.draw(50, rng)
	xTest, yTest := sc.draw(1000, rng)
	xDirty := contaminate(xClean, 0.02, 25, rng)

	fit := func(m robcov.Method) *stepwise.Model {
		model, err := stepwise.Fit(xDirty, yTrain,
			stepwise.WithFolds(5),
			stepwise.WithPathLengths(10, 10),
			stepwise.WithMethod(m),
		)
		require.NoError(t, err, "method %v", m)
		return model
	}

	defErr := normalizedRMSPE(t, fit(robcov.MethodDefault), xTest, yTest, sc.noiseSD)
	ddcErr := normalizedRMSPE(t, fit(robcov.MethodDDC), xTest, yTest, sc.noiseSD)
	assert.Less(t, ddcErr, defErr, "cellwise correction must beat the non-robust fit on contaminated data")
}

// TestFit_InputValidation covers the fatal INIT errors.
func TestFit_InputValidation(t *testing.T) {
	x := mat.NewDense(6, 2, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	y := []float64{1, 2, 3, 4, 5, 6}

	_, err := stepwise.Fit(nil, y)
	assert.ErrorIs(t, err, stepwise.ErrNilData)

	_, err = stepwise.Fit(x, y[:3])
	assert.ErrorIs(t, err, stepwise.ErrDimensionMismatch)

	_, err = stepwise.Fit(x, y, stepwise.WithFolds(7))
	assert.ErrorIs(t, err, stepwise.ErrBadFoldCount, "K > n must fail at INIT")

	// Overlapping fold assignment.
	_, err = stepwise.Fit(x, y, stepwise.WithFoldAssignment([][]int{{0, 1, 2}, {2, 3}, {4, 5}}))
	assert.ErrorIs(t, err, stepwise.ErrBadFolds)

	// Incomplete cover.
	_, err = stepwise.Fit(x, y, stepwise.WithFoldAssignment([][]int{{0, 1}, {2, 3}}))
	assert.ErrorIs(t, err, stepwise.ErrBadFolds)

	// Out-of-range index.
	_, err = stepwise.Fit(x, y, stepwise.WithFoldAssignment([][]int{{0, 1, 2}, {3, 4}, {5, 9}}))
	assert.ErrorIs(t, err, stepwise.ErrBadFolds)
}

// TestOptionPanics documents the programmer-error surface of the option
// constructors.
func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { stepwise.WithFolds(1) }, "K < 2 is a programmer error")
	assert.Panics(t, func() { stepwise.WithMinRatio(1.5) }, "ratio outside (0,1)")
	assert.Panics(t, func() { stepwise.WithPathLengths(0, 5) }, "empty grid")
	assert.Panics(t, func() { stepwise.WithWorkers(0) }, "no workers")
	assert.Panics(t, func() { stepwise.WithRand(nil) }, "nil rand source")
}

// TestDrawFolds_PartitionInvariants — drawn folds are pairwise disjoint,
// cover every row, and differ in size by at most one.
func TestDrawFolds_PartitionInvariants(t *testing.T) {
	for _, tc := range []struct{ n, k int }{{10, 2}, {11, 3}, {50, 5}, {7, 7}} {
		folds := stepwise.DrawFolds(tc.n, tc.k, rand.New(rand.NewSource(9)))
		require.Len(t, folds, tc.k, "n=%d k=%d", tc.n, tc.k)
		require.NoError(t, stepwise.ValidateFolds(folds, tc.n, tc.k), "drawn folds must validate")

		minSize, maxSize := tc.n, 0
		for _, f := range folds {
			if len(f) < minSize {
				minSize = len(f)
			}
			if len(f) > maxSize {
				maxSize = len(f)
			}
		}
		assert.LessOrEqual(t, maxSize-minSize, 1, "sizes as equal as possible")
	}
}

// TestDrawFolds_DeterministicPerSeed — identical seeds reproduce the draw.
func TestDrawFolds_DeterministicPerSeed(t *testing.T) {
	a := stepwise.DrawFolds(20, 4, rand.New(rand.NewSource(13)))
	b := stepwise.DrawFolds(20, 4, rand.New(rand.NewSource(13)))
	assert.Equal(t, a, b, "same seed, same partition")
}

// TestPredict_Idempotent calls Predict twice with identical inputs and
// demands bit-identical output, plus the exact intercept offset between
// the two intercept modes.
func TestPredict_Idempotent(t *testing.T) {
	sc := newScenario(10, 0.5, 1)
	rng := rand.New(rand.NewSource(21))
	x, y := sc.draw(30, rng)
	xNew, _ := sc.draw(8, rng)

	model, err := stepwise.Fit(x, y, stepwise.WithFolds(3), stepwise.WithPathLengths(5, 5))
	require.NoError(t, err)

	first, err := model.Predict(xNew, true)
	require.NoError(t, err)
	second, err := model.Predict(xNew, true)
	require.NoError(t, err)
	assert.Equal(t, first, second, "no hidden mutable state")

	bare, err := model.Predict(xNew, false)
	require.NoError(t, err)
	for i := range bare {
		assert.Equal(t, bare[i]+model.Intercept, first[i], "intercept is a pure additive offset")
	}
}

// TestPredict_Validation covers the predictor's error surface.
func TestPredict_Validation(t *testing.T) {
	var empty stepwise.Model
	_, err := empty.Predict(mat.NewDense(1, 2, []float64{1, 2}), true)
	assert.ErrorIs(t, err, stepwise.ErrNotFitted)

	sc := newScenario(4, 0.5, 1)
	rng := rand.New(rand.NewSource(2))
	x, y := sc.draw(20, rng)
	model, err := stepwise.Fit(x, y, stepwise.WithFolds(2), stepwise.WithPathLengths(4, 4))
	require.NoError(t, err)

	_, err = model.Predict(nil, true)
	assert.ErrorIs(t, err, stepwise.ErrNilData)

	_, err = model.Predict(mat.NewDense(1, 7, make([]float64, 7)), true)
	assert.ErrorIs(t, err, stepwise.ErrDimensionMismatch)
}

// TestSelectCoefficients_SingleSplit exercises the standalone split-level
// selector: membership, error vector shape, and the first-minimizer rule.
func TestSelectCoefficients_SingleSplit(t *testing.T) {
	sc := newScenario(12, 0.5, 1)
	rng := rand.New(rand.NewSource(17))
	xTrain, yTrain := sc.draw(40, rng)
	xVal, yVal := sc.draw(20, rng)

	path := []float64{0.8, 0.4, 0.2, 0.1, 0.05}
	res, err := stepwise.SelectCoefficients(xTrain, yTrain, xVal, yVal, 0.1, path)
	require.NoError(t, err)

	require.Len(t, res.Errors, len(path))
	assert.Contains(t, res.Lambdas, res.BestLambda)
	assert.Equal(t, res.BestLambda, res.Lambdas[res.BestIndex])
	minErr := math.Inf(1)
	for _, e := range res.Errors {
		minErr = math.Min(minErr, e)
	}
	assert.Equal(t, minErr, res.Errors[res.BestIndex], "selected error is the minimum")
	assert.Len(t, res.Coefficients, 12)
}

// TestFit_SuppliedFoldsReused — a caller-supplied assignment must be
// accepted verbatim (here: deterministic contiguous folds) and produce a
// reproducible model.
func TestFit_SuppliedFoldsReused(t *testing.T) {
	sc := newScenario(8, 0.5, 1)
	rng := rand.New(rand.NewSource(31))
	x, y := sc.draw(24, rng)

	folds := [][]int{
		{0, 1, 2, 3, 4, 5, 6, 7},
		{8, 9, 10, 11, 12, 13, 14, 15},
		{16, 17, 18, 19, 20, 21, 22, 23},
	}
	a, err := stepwise.Fit(x, y, stepwise.WithFoldAssignment(folds), stepwise.WithPathLengths(5, 5))
	require.NoError(t, err)
	b, err := stepwise.Fit(x, y, stepwise.WithFoldAssignment(folds), stepwise.WithPathLengths(5, 5))
	require.NoError(t, err)

	assert.Equal(t, a.CoefLambda, b.CoefLambda, "identical folds, identical selection")
	assert.Equal(t, a.Coefficients, b.Coefficients, "identical folds, identical coefficients")
}

// TestFit_WorkerCountInvariant — the deterministic reduction must make the
// result independent of the concurrency limit.
func TestFit_WorkerCountInvariant(t *testing.T) {
	sc := newScenario(10, 0.5, 1)
	rng := rand.New(rand.NewSource(41))
	x, y := sc.draw(30, rng)

	serial, err := stepwise.Fit(x, y, stepwise.WithPathLengths(5, 5), stepwise.WithWorkers(1))
	require.NoError(t, err)
	parallel, err := stepwise.Fit(x, y, stepwise.WithPathLengths(5, 5), stepwise.WithWorkers(8))
	require.NoError(t, err)

	assert.Equal(t, serial.CoefLambda, parallel.CoefLambda, "selection independent of workers")
	assert.Equal(t, serial.Coefficients, parallel.Coefficients, "coefficients independent of workers")
}
