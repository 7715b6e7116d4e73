// Package robcov: column standardization shared by the selection stages.

package robcov

import "gonum.org/v1/gonum/mat"

// LocFunc maps a column to a location or dispersion scalar. The selection
// stages accept caller-supplied pairs so classical (mean/sd) and robust
// (median/MAD) standardization plug into the same code path.
type LocFunc func([]float64) float64

// RobustScale is the guarded robust dispersion used throughout the package:
// MAD, falling back to the classical standard deviation when the MAD
// collapses, and to 1 when both vanish. Always strictly positive.
func RobustScale(xs []float64) float64 { return robustScale(xs) }

// Standardize rescales every column of x to (x_ij − center_j)/scale_j and
// reports the per-column centers and scales. A zero or negative scale is
// replaced by 1 so constant columns pass through centered but unscaled.
// x is not mutated.
func Standardize(x *mat.Dense, center, scale LocFunc) (z *mat.Dense, centers, scales []float64) {
	n, p := x.Dims()
	z = mat.NewDense(n, p, nil)
	centers = make([]float64, p)
	scales = make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		centers[j] = center(col)
		s := scale(col)
		if s <= 0 {
			s = 1
		}
		scales[j] = s
		for i := 0; i < n; i++ {
			z.Set(i, j, (col[i]-centers[j])/s)
		}
	}
	return z, centers, scales
}

// StandardizeVec rescales a vector by the given location pair, with the
// same zero-scale guard as Standardize. y is not mutated.
func StandardizeVec(y []float64, center, scale LocFunc) (z []float64, c, s float64) {
	c = center(y)
	s = scale(y)
	if s <= 0 {
		s = 1
	}
	z = make([]float64, len(y))
	for i, v := range y {
		z[i] = (v - c) / s
	}
	return z, c, s
}
