package penalty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/robnet/penalty"
)

// TestGlassoPath_ShapeAndEndpoints verifies length, strict monotonicity and
// the endpoint ratio for a range of grid sizes.
func TestGlassoPath_ShapeAndEndpoints(t *testing.T) {
	cov := mat.NewSymDense(3, []float64{
		2, 0.8, -1.2,
		0.8, 1, 0.3,
		-1.2, 0.3, 1.5,
	})
	for _, m := range []int{2, 5, 10, 50} {
		path, err := penalty.GlassoPath(cov, m, 0.01)
		require.NoError(t, err, "nlambda=%d", m)
		require.Len(t, path, m, "requested length must be honoured")

		assert.Equal(t, 1.2, path[0], "lambda-max is the largest |off-diagonal|")
		assert.InDelta(t, path[0]*0.01, path[m-1], 1e-12, "path[0]*ratio == path[last]")
		for i := 1; i < m; i++ {
			assert.Less(t, path[i], path[i-1], "path must be strictly decreasing at %d", i)
		}
	}
}

// TestGlassoPath_DegenerateDiagonal checks the all-zero off-diagonal case.
func TestGlassoPath_DegenerateDiagonal(t *testing.T) {
	cov := mat.NewSymDense(3, []float64{
		4, 0, 0,
		0, 9, 0,
		0, 0, 1,
	})
	path, err := penalty.GlassoPath(cov, 10, 0.01)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, path, "diagonal covariance collapses the path to [0]")
}

// TestGlassoPath_Validation covers the fatal grid errors.
func TestGlassoPath_Validation(t *testing.T) {
	cov := mat.NewSymDense(2, []float64{1, 0.5, 0.5, 1})

	_, err := penalty.GlassoPath(nil, 10, 0.01)
	assert.ErrorIs(t, err, penalty.ErrNilCovariance)

	_, err = penalty.GlassoPath(cov, 0, 0.01)
	assert.ErrorIs(t, err, penalty.ErrBadLength)

	_, err = penalty.GlassoPath(cov, 10, 1.5)
	assert.ErrorIs(t, err, penalty.ErrBadRatio)
}

// TestCoefficientPath_LassoBound pins the L1 upper bound to max|crossCov|.
func TestCoefficientPath_LassoBound(t *testing.T) {
	cross := []float64{0.3, -2.5, 1.1}
	path, err := penalty.CoefficientPath(cross, 1, 7, 0.05)
	require.NoError(t, err)
	require.Len(t, path, 7)
	assert.Equal(t, 2.5, path[0], "lasso bound is the largest |cross-covariance|")
	assert.InDelta(t, 2.5*0.05, path[6], 1e-12, "endpoint ratio")
}

// TestCoefficientPath_RidgeBound checks the L2 bound sits three decades
// above the lasso bound.
func TestCoefficientPath_RidgeBound(t *testing.T) {
	cross := []float64{0.3, -2.5, 1.1}
	path, err := penalty.CoefficientPath(cross, 2, 4, 0.01)
	require.NoError(t, err)
	assert.InDelta(t, 2500.0, path[0], 1e-9, "ridge bound = lasso bound / 1e-3")
}

// TestCoefficientPath_UnsupportedNorm ensures exponents other than 1 and 2
// fail fast instead of silently substituting a default.
func TestCoefficientPath_UnsupportedNorm(t *testing.T) {
	_, err := penalty.CoefficientPath([]float64{1, 2}, 3, 10, 0.01)
	assert.ErrorIs(t, err, penalty.ErrUnsupportedNorm)
}

// TestCoefficientPath_DegenerateCross checks the all-zero vector collapse.
func TestCoefficientPath_DegenerateCross(t *testing.T) {
	path, err := penalty.CoefficientPath([]float64{0, 0, 0}, 1, 10, 0.01)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, path, "zero cross-covariance collapses the path to [0]")
}
