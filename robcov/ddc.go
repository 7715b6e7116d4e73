// Package robcov: cellwise outlier detection and imputation.
//
// The detector follows the DetectDeviatingCells idea: each cell is predicted
// from the other columns through a robust correlation graph, and cells whose
// standardized residual exceeds a Gaussian cutoff are replaced by their
// prediction. The procedure is deterministic.

package robcov

import "gonum.org/v1/gonum/mat"

const (
	// ddcCorrMin — columns correlated below this (absolute) level carry no
	// predictive weight for a cell.
	ddcCorrMin = 0.35

	// ddcCutoff flags a cell when its standardized residual exceeds
	// sqrt(χ²₁(0.99)), the univariate 99% Gaussian cutoff.
	ddcCutoff = 2.5758293035489004

	// ddcMinColumns — cellwise prediction needs at least two columns.
	ddcMinColumns = 2
)

// ImputeCellwise returns a copy of x in which cells flagged as cellwise
// outliers are replaced by predictions from correlated columns. The input
// is not mutated. Matrices with fewer than two columns are returned as an
// unmodified copy (no neighbour exists to predict from); callers that care
// should check the column count up front, as Estimate does.
func ImputeCellwise(x *mat.Dense) *mat.Dense {
	n, p := x.Dims()
	out := mat.DenseCopyOf(x)
	if p < ddcMinColumns {
		return out
	}

	// Robust per-column location/scale and standardized cells.
	med := make([]float64, p)
	scale := make([]float64, p)
	z := mat.NewDense(n, p, nil)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		med[j] = Median(col)
		scale[j] = robustScale(col)
		for i := 0; i < n; i++ {
			z.Set(i, j, (col[i]-med[j])/scale[j])
		}
	}

	// Pairwise winsorized correlations between standardized columns.
	corr := pairwiseWinsorCorr(z)

	// Univariate pre-flagging: cells already extreme on their own column
	// must not feed the predictions of their neighbours.
	suspect := make([][]bool, n)
	for i := 0; i < n; i++ {
		suspect[i] = make([]bool, p)
		for j := 0; j < p; j++ {
			suspect[i][j] = abs(z.At(i, j)) > ddcCutoff
		}
	}

	// Predict every standardized cell from its connected columns, flag and
	// impute cells with large residuals. Cells without a usable neighbour
	// cannot be judged bivariately and are left alone.
	zu := make([]float64, n)
	judged := make([]bool, n)
	resid := make([]float64, n)
	for j := 0; j < p; j++ {
		for i := 0; i < n; i++ {
			zu[i], judged[i] = predictCell(z, corr, suspect, i, j)
			if judged[i] {
				resid[i] = z.At(i, j) - zu[i]
			} else {
				resid[i] = 0
			}
		}
		rs := robustScale(resid)
		for i := 0; i < n; i++ {
			if judged[i] && abs(resid[i])/rs > ddcCutoff {
				out.Set(i, j, med[j]+scale[j]*zu[i])
			}
		}
	}
	return out
}

// predictCell returns the weighted prediction of standardized cell (i, j)
// from non-suspect cells in columns whose robust correlation with column j
// clears ddcCorrMin. ok is false when no neighbour contributed.
func predictCell(z *mat.Dense, corr *mat.SymDense, suspect [][]bool, i, j int) (pred float64, ok bool) {
	num, den := 0.0, 0.0
	p := corr.SymmetricDim()
	for k := 0; k < p; k++ {
		if k == j || suspect[i][k] {
			continue
		}
		r := corr.At(j, k)
		if abs(r) < ddcCorrMin {
			continue
		}
		w := abs(r)
		num += w * r * z.At(i, k)
		den += w
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// pairwiseWinsorCorr fills a symmetric matrix of winsorized correlations
// between the columns of z (unit diagonal).
func pairwiseWinsorCorr(z *mat.Dense) *mat.SymDense {
	n, p := z.Dims()
	corr := mat.NewSymDense(p, nil)
	cj := make([]float64, n)
	ck := make([]float64, n)
	for j := 0; j < p; j++ {
		corr.SetSym(j, j, 1)
		mat.Col(cj, j, z)
		for k := j + 1; k < p; k++ {
			mat.Col(ck, k, z)
			corr.SetSym(j, k, CorrWinsorized(cj, ck))
		}
	}
	return corr
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
