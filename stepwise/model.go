// Package stepwise: the fitted model and its predictor.

package stepwise

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Model is the outcome of a completed two-stage fit. It is created once at
// the end of Fit and must be treated as read-only thereafter; Predict never
// mutates it.
type Model struct {
	// GraphLambda is the selected graphical-lasso penalty λ₁.
	GraphLambda float64

	// CoefLambda is the selected coefficient penalty λ₂.
	CoefLambda float64

	// Coefficients are on the original data scale: each standardized
	// coefficient has been multiplied by scale(Y)/scale(X_j).
	Coefficients []float64

	// Intercept recenters predictions onto the original response scale.
	Intercept float64

	// XCenter and XScale are the per-column standardization factors used
	// during fitting; XScale is the "per-column scale factors" record of
	// the fit.
	XCenter []float64
	XScale  []float64

	// YCenter and YScale are the response standardization factors.
	YCenter float64
	YScale  float64

	// CoefPath and CVErrors expose the coefficient-stage search: the λ₂
	// grid and the fold-averaged RMSPE per grid position.
	CoefPath []float64
	CVErrors []float64
}

// Predict applies the fitted model to new rows: ŷ = X·coefficients
// (+ intercept when useIntercept). Pure function of the model and xNew;
// calling it twice with identical inputs yields bit-identical output.
func (m *Model) Predict(xNew *mat.Dense, useIntercept bool) ([]float64, error) {
	if m == nil || m.Coefficients == nil {
		return nil, ErrNotFitted
	}
	if xNew == nil {
		return nil, ErrNilData
	}
	n, p := xNew.Dims()
	if p != len(m.Coefficients) {
		return nil, fmt.Errorf("%w: model has %d coefficients, data has %d columns",
			ErrDimensionMismatch, len(m.Coefficients), p)
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < p; j++ {
			sum += xNew.At(i, j) * m.Coefficients[j]
		}
		if useIntercept {
			sum += m.Intercept
		}
		out[i] = sum
	}
	return out, nil
}
