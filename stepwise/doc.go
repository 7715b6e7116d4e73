// Package stepwise ties the pipeline together: it tunes the graph penalty
// and the coefficient penalty in two stages, refits on the full sample, and
// exposes the resulting immutable model for prediction.
//
// 🚀 The two-stage fit:
//
//  1. INIT — validate dimensions, the fold count, and any supplied fold
//     assignment before touching the numerics.
//  2. Graph stage — run the precision selection once on the full training
//     data; the winning penalty λ₁ is held fixed from here on. It is
//     deliberately NOT re-tuned inside the coefficient CV loop; the
//     reported CV error is therefore mildly optimistic (λ₁ saw the same
//     data), a known approximation of the two-stage design.
//  3. Coefficient stage — build one λ₂ path from the full-sample
//     cross-covariance, then for each of K folds: standardize the held-in
//     rows, estimate their covariance, run the graphical lasso at λ₁,
//     sweep the coefficient solver down the λ₂ path, and score every
//     candidate by RMSPE on the held-out rows. Folds run concurrently
//     (errgroup fan-out) and reduce deterministically to a per-penalty
//     mean; the first minimizer on the decreasing path wins.
//  4. Final fit — refit covariance → precision → coefficients on the whole
//     sample at (λ₁, λ₂), then fold the standardization back into the
//     coefficients and intercept.
//
// Fold assignments are drawn even-as-possible from an explicit rand source
// (deterministic by default), or supplied by the caller and validated to
// partition the rows exactly. Both stages reuse the same folds.
//
// Predict is a pure function of the model and the new rows: it applies the
// rescaled coefficients and, on request, the intercept.
package stepwise
