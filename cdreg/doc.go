// Package cdreg solves L1- and L2-penalized regression in covariance form:
// given a Gram matrix G (typically the regularized covariance reported by
// the glasso stage) and a cross-covariance vector c, it minimizes
//
//	½ βᵀGβ − cᵀβ + λ·pen(β)
//
// for every value on a decreasing penalty path, one coefficient vector per
// penalty.
//
// The lasso (norm 1) case runs coordinate descent with soft-thresholding
// and warm starts down the path; because the objective depends on the data
// only through (G, c), each coordinate update is O(p) regardless of the
// sample size. The ridge (norm 2) case is the closed form (G + λI)β = c,
// solved by Cholesky factorization.
//
// Inputs are never mutated; candidates are freshly allocated.
package cdreg
