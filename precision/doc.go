// Package precision selects a sparse precision matrix for a data matrix:
// estimate a (possibly robust) covariance, sweep a decreasing graphical
// lasso penalty path, score every candidate with an information criterion,
// and keep the minimizer.
//
// Criteria (n observations, p variables, Θ the candidate, Σ the estimate):
//
//	loglik  −log|Θ| + tr(ΘΣ)
//	bic     loglik + (log n / n)·E      E = nonzeros on the lower triangle
//	                                    including the diagonal
//	ebic    loglik + (log n / n)·E' + E'·γ·4·log(p)/n
//	                                    E' = strictly off-diagonal nonzeros,
//	                                    γ fixed at 0.5
//
// Ties are broken toward the first minimizer on the decreasing path, i.e.
// the sparsest model among equals. The selected penalty is always a member
// of the realized path and the returned Θ corresponds to it exactly.
package precision
