// Package robcov: nearest positive-semidefinite projection.

package robcov

import "gonum.org/v1/gonum/mat"

// psdEigenFloor is the relative floor applied to eigenvalues during the PSD
// projection; values below floor·λmax are raised to the floor so downstream
// factorizations stay numerically stable.
const psdEigenFloor = 1e-12

// NearestPSD projects a symmetric matrix onto the positive-semidefinite
// cone by clipping negative eigenvalues in its spectral decomposition.
// Pairwise robust covariance matrices are symmetric by construction but
// need not be PSD; the glasso stage requires PSD input.
//
// The input is not mutated; a fresh SymDense is returned. Eigen failure is
// reported as an error rather than a panic.
func NearestPSD(s *mat.SymDense) (*mat.SymDense, error) {
	if s == nil {
		return nil, ErrNilMatrix
	}
	p := s.SymmetricDim()

	var eig mat.EigenSym
	if ok := eig.Factorize(s, true); !ok {
		return nil, ErrEigenFailed
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	maxVal := 0.0
	for _, v := range vals {
		if v > maxVal {
			maxVal = v
		}
	}
	floor := psdEigenFloor * maxVal
	for i, v := range vals {
		if v < floor {
			vals[i] = floor
		}
	}

	// Reconstruct Q·diag(vals)·Qᵀ.
	scaled := mat.NewDense(p, p, nil)
	for j := 0; j < p; j++ {
		for i := 0; i < p; i++ {
			scaled.Set(i, j, vecs.At(i, j)*vals[j])
		}
	}
	var full mat.Dense
	full.Mul(scaled, vecs.T())

	out := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			// Average the (i,j) and (j,i) entries to absorb rounding noise.
			out.SetSym(i, j, (full.At(i, j)+full.At(j, i))/2)
		}
	}
	return out, nil
}
