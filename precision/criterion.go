package precision

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Scoring constants.
const (
	// sparsityTol — entries with |θ| above this count as estimated edges.
	sparsityTol = 1e-8

	// ebicGamma is the extended-BIC sparsity weight, fixed at 0.5.
	ebicGamma = 0.5
)

// Criterion selects the information criterion used to score candidates.
type Criterion int

const (
	// CriterionLogLik scores by the negative Gaussian log-likelihood alone.
	CriterionLogLik Criterion = iota

	// CriterionBIC adds (log n / n) per estimated parameter, counting the
	// lower triangle including the diagonal.
	CriterionBIC

	// CriterionEBIC adds the extended-BIC term on top of the BIC term,
	// counting strictly off-diagonal edges only.
	CriterionEBIC
)

var criterionNames = map[Criterion]string{
	CriterionLogLik: "loglik",
	CriterionBIC:    "bic",
	CriterionEBIC:   "ebic",
}

// ErrUnknownCriterion indicates a criterion outside the declared enum.
var ErrUnknownCriterion = errors.New("precision: unsupported criterion")

// String returns the canonical tag for c.
func (c Criterion) String() string {
	if s, ok := criterionNames[c]; ok {
		return s
	}
	return fmt.Sprintf("criterion(%d)", int(c))
}

// ParseCriterion maps a string tag onto a Criterion, failing fast on
// unknown tags.
func ParseCriterion(tag string) (Criterion, error) {
	for c, s := range criterionNames {
		if s == tag {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCriterion, tag)
}

func (c Criterion) valid() bool {
	_, ok := criterionNames[c]
	return ok
}

// Score evaluates one precision candidate theta against the covariance
// estimate sigma it was fitted to, for a sample of n observations.
//
// A candidate whose determinant is not positive (numerically infeasible)
// scores +Inf so that path selection skips it; this is not an error.
// An out-of-range criterion returns ErrUnknownCriterion.
func Score(theta, sigma *mat.SymDense, n int, crit Criterion) (float64, error) {
	if !crit.valid() {
		return 0, fmt.Errorf("%w: %v", ErrUnknownCriterion, crit)
	}
	if theta == nil || sigma == nil {
		return 0, errors.New("precision: nil matrix in Score")
	}
	p := theta.SymmetricDim()

	var chol mat.Cholesky
	if !chol.Factorize(theta) {
		return math.Inf(1), nil
	}
	negLogLik := -chol.LogDet() + traceProduct(theta, sigma)
	if crit == CriterionLogLik {
		return negLogLik, nil
	}

	nf := float64(n)
	if crit == CriterionBIC {
		e := countNonzeros(theta, true)
		return negLogLik + math.Log(nf)/nf*float64(e), nil
	}

	eOff := countNonzeros(theta, false)
	bicTerm := negLogLik + math.Log(nf)/nf*float64(eOff)
	return bicTerm + float64(eOff)*ebicGamma*4*math.Log(float64(p))/nf, nil
}

// traceProduct computes tr(Θ·Σ) without forming the product.
func traceProduct(theta, sigma *mat.SymDense) float64 {
	p := theta.SymmetricDim()
	sum := 0.0
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			sum += theta.At(i, j) * sigma.At(j, i)
		}
	}
	return sum
}

// countNonzeros counts entries with |θ| > sparsityTol on the lower
// triangle; withDiagonal includes the diagonal in the count.
func countNonzeros(theta *mat.SymDense, withDiagonal bool) int {
	p := theta.SymmetricDim()
	count := 0
	for i := 0; i < p; i++ {
		if withDiagonal && math.Abs(theta.At(i, i)) > sparsityTol {
			count++
		}
		for j := 0; j < i; j++ {
			if math.Abs(theta.At(i, j)) > sparsityTol {
				count++
			}
		}
	}
	return count
}
