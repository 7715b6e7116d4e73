// Package robcov: robust univariate and bivariate primitives shared by the
// Winsor, Wrap and DDC estimators.

package robcov

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// madConsistency rescales the raw median absolute deviation so that MAD
// estimates the standard deviation consistently at the Gaussian model
// (1 / Φ⁻¹(0.75)).
const madConsistency = 1.4826022185056018

// winsorCutoff bounds standardized values before a pairwise correlation is
// computed; ±2 keeps ~95% of Gaussian cells untouched.
const winsorCutoff = 2.0

// Wrapping transform constants (Raymaekers & Rousseeuw). The transform is
// the identity on [-wrapA, wrapA], a smooth tanh descent on (wrapA, wrapB],
// and exactly zero beyond wrapB; wrapQ1/wrapQ2 make the pieces continuous.
const (
	wrapA  = 1.5
	wrapB  = 4.0
	wrapQ1 = 1.540793
	wrapQ2 = 0.8622731
)

// Median returns the sample median of xs. Empty input yields NaN.
// The input slice is not mutated.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// MAD returns the consistency-corrected median absolute deviation of xs
// around its median. Empty input yields NaN.
func MAD(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	med := Median(xs)
	dev := make([]float64, n)
	for i, v := range xs {
		dev[i] = math.Abs(v - med)
	}
	return madConsistency * Median(dev)
}

// robustScale returns MAD(xs), falling back to the classical standard
// deviation when the MAD collapses to zero (more than half the column is
// tied), and to 1 when both vanish. Guarantees a strictly positive scale.
func robustScale(xs []float64) float64 {
	s := MAD(xs)
	if s > 0 {
		return s
	}
	s = stat.StdDev(xs, nil)
	if s > 0 {
		return s
	}
	return 1
}

// clampSym clips v into [-c, c].
func clampSym(v, c float64) float64 {
	if v > c {
		return c
	}
	if v < -c {
		return -c
	}
	return v
}

// CorrWinsorized computes a robust bivariate correlation of u and v: both
// vectors are standardized by median/MAD, clipped at ±2, and correlated with
// the ordinary product-moment formula. The result is clipped into [-1, 1].
// Inputs must have equal length; the slices are not mutated.
func CorrWinsorized(u, v []float64) float64 {
	n := len(u)
	if n == 0 || n != len(v) {
		return math.NaN()
	}
	zu := winsorizeColumn(u)
	zv := winsorizeColumn(v)
	r := stat.Correlation(zu, zv, nil)
	if math.IsNaN(r) {
		return 0
	}
	return clampSym(r, 1)
}

// winsorizeColumn standardizes xs by median/robustScale and clips at the
// winsor cutoff. Returns a fresh slice.
func winsorizeColumn(xs []float64) []float64 {
	med := Median(xs)
	s := robustScale(xs)
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = clampSym((v-med)/s, winsorCutoff)
	}
	return out
}

// psiWrap is the bounded wrapping function applied to a standardized value.
func psiWrap(z float64) float64 {
	az := math.Abs(z)
	switch {
	case az <= wrapA:
		return z
	case az <= wrapB:
		return math.Copysign(wrapQ1*math.Tanh(wrapQ2*(wrapB-az)), z)
	default:
		return 0
	}
}

// wrapColumn maps xs through the wrapping transform around its robust
// location/scale and back to the original units: med + scale·ψ((x-med)/scale).
// Returns a fresh slice.
func wrapColumn(xs []float64) []float64 {
	med := Median(xs)
	s := robustScale(xs)
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = med + s*psiWrap((v-med)/s)
	}
	return out
}
