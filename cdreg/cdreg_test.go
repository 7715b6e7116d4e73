package cdreg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/robnet/cdreg"
)

// TestSolvePath_LassoOrthogonalDesign pins coordinate descent to the known
// soft-threshold solution on an identity Gram matrix: β_k = S(c_k, λ).
func TestSolvePath_LassoOrthogonalDesign(t *testing.T) {
	gram := mat.NewSymDense(3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	c := []float64{2, -0.5, 0.1}
	betas, err := cdreg.Solver{}.SolvePath(gram, c, []float64{1.0, 0.2}, cdreg.NormLasso)
	require.NoError(t, err)
	require.Len(t, betas, 2)

	assert.InDelta(t, 1.0, betas[0][0], 1e-9, "S(2, 1) = 1")
	assert.Zero(t, betas[0][1], "S(-0.5, 1) = 0")
	assert.Zero(t, betas[0][2], "S(0.1, 1) = 0")

	assert.InDelta(t, 1.8, betas[1][0], 1e-9, "S(2, 0.2) = 1.8")
	assert.InDelta(t, -0.3, betas[1][1], 1e-9, "S(-0.5, 0.2) = -0.3")
	assert.Zero(t, betas[1][2], "S(0.1, 0.2) = 0")
}

// TestSolvePath_LassoFullShrinkage checks that λ ≥ max|c| kills every
// coefficient even on a correlated Gram matrix.
func TestSolvePath_LassoFullShrinkage(t *testing.T) {
	gram := mat.NewSymDense(2, []float64{1, 0.7, 0.7, 1})
	betas, err := cdreg.Solver{}.SolvePath(gram, []float64{0.4, -0.3}, []float64{0.4}, cdreg.NormLasso)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, betas[0], "path top must zero the whole vector")
}

// TestSolvePath_RidgeClosedForm checks the ridge branch against a
// hand-solved 2×2 system (G + λI)β = c.
func TestSolvePath_RidgeClosedForm(t *testing.T) {
	gram := mat.NewSymDense(2, []float64{1, 0.5, 0.5, 1})
	// λ=1: (2I + offdiag 0.5) β = (1, 0) → β = (8/15, -2/15).
	betas, err := cdreg.Solver{}.SolvePath(gram, []float64{1, 0}, []float64{1}, cdreg.NormRidge)
	require.NoError(t, err)
	assert.InDelta(t, 8.0/15.0, betas[0][0], 1e-12, "ridge closed form, first coefficient")
	assert.InDelta(t, -2.0/15.0, betas[0][1], 1e-12, "ridge closed form, second coefficient")
}

// TestSolvePath_Validation covers the fatal input errors.
func TestSolvePath_Validation(t *testing.T) {
	gram := mat.NewSymDense(2, []float64{1, 0, 0, 1})

	_, err := cdreg.Solver{}.SolvePath(nil, []float64{1, 2}, []float64{1}, cdreg.NormLasso)
	assert.ErrorIs(t, err, cdreg.ErrNilGram)

	_, err = cdreg.Solver{}.SolvePath(gram, []float64{1}, []float64{1}, cdreg.NormLasso)
	assert.ErrorIs(t, err, cdreg.ErrDimensionMismatch)

	_, err = cdreg.Solver{}.SolvePath(gram, []float64{1, 2}, []float64{0.1, 0.5}, cdreg.NormLasso)
	assert.ErrorIs(t, err, cdreg.ErrBadPath)

	_, err = cdreg.Solver{}.SolvePath(gram, []float64{1, 2}, []float64{1}, 3)
	assert.ErrorIs(t, err, cdreg.ErrUnsupportedNorm)
}

// TestSolvePath_WarmStartMatchesColdStart ensures results down a path are
// identical to solving each penalty independently.
func TestSolvePath_WarmStartMatchesColdStart(t *testing.T) {
	gram := mat.NewSymDense(3, []float64{
		1, 0.4, 0.2,
		0.4, 1, 0.3,
		0.2, 0.3, 1,
	})
	c := []float64{0.9, 0.5, -0.7}
	path := []float64{0.5, 0.25, 0.1, 0.01}

	warm, err := cdreg.Solver{}.SolvePath(gram, c, path, cdreg.NormLasso)
	require.NoError(t, err)
	for i, lambda := range path {
		cold, err := cdreg.Solver{}.SolvePath(gram, c, []float64{lambda}, cdreg.NormLasso)
		require.NoError(t, err)
		for k := range cold[0] {
			assert.InDelta(t, cold[0][k], warm[i][k], 1e-4,
				"warm and cold starts must agree at λ=%g, coord %d", lambda, k)
		}
	}
}
