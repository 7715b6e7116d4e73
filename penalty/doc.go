// Package penalty constructs the decreasing lambda paths searched by the
// graph-fitting and coefficient-fitting stages.
//
// Both constructors share the same shape: derive an upper bound λmax from
// the input moments, set λmin = ratio·λmax, and return nlambda values
// log-spaced between them, largest first. A degenerate input — covariance
// with an all-zero off-diagonal, or an all-zero cross-covariance — yields
// the single-element path [0], which callers must handle: it means nothing
// is left to penalize.
//
//   - GlassoPath: λmax = max |off-diagonal entry| of the covariance.
//   - CoefficientPath: λmax = max |cross-covariance entry| for the L1
//     (lasso) norm; the L2 (ridge) bound divides the same quantity by a
//     small floor, since ridge shrinkage only reaches zero asymptotically.
//
// Norms other than 1 and 2 are rejected with ErrUnsupportedNorm.
package penalty
