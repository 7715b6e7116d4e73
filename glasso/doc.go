// Package glasso estimates sparse precision matrices by L1-penalized
// Gaussian likelihood maximization — the graphical lasso.
//
// 🚀 Algorithm (blockwise coordinate descent, Friedman–Hastie–Tibshirani):
//
//  1. Start from W = Σ + λI.
//  2. Sweep the columns: for column j, solve the lasso subproblem
//     min ½ βᵀW₁₁β − s₁₂ᵀβ + λ‖β‖₁
//     by coordinate descent and write w₁₂ = W₁₁β back into W.
//  3. Repeat sweeps until the largest off-diagonal change of W falls below
//     the tolerance (scaled by the mean |off-diagonal| of Σ).
//  4. Recover Θ column by column: θ₂₂ = 1/(w₂₂ − w₁₂ᵀβ), θ₁₂ = −β·θ₂₂.
//
// SolvePath runs the algorithm down a decreasing lambda sequence with warm
// starts, one candidate per penalty. When no sequence is supplied the
// solver builds its own from the covariance (see package penalty) — callers
// must always consume the Lambdas reported in the Result, never assume
// their requested grid was used verbatim.
//
// Complexity: O(sweeps · p³) per penalty value; memory O(p²).
package glasso
