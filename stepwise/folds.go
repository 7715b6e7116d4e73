// Package stepwise: fold drawing and validation. A fold assignment is a
// partition of the row indices 0..n-1 into K disjoint, non-empty parts of
// sizes as equal as possible; both tuning stages reuse the same partition.

package stepwise

import (
	"fmt"
	"math/rand"
)

// drawFolds shuffles 0..n-1 with rng and deals the permutation into k
// contiguous chunks whose sizes differ by at most one.
func drawFolds(n, k int, rng *rand.Rand) [][]int {
	perm := rng.Perm(n)
	folds := make([][]int, k)
	base, extra := n/k, n%k
	at := 0
	for f := 0; f < k; f++ {
		size := base
		if f < extra {
			size++
		}
		folds[f] = append([]int(nil), perm[at:at+size]...)
		at += size
	}
	return folds
}

// validateFolds checks that folds is an exact k-part partition of 0..n-1
// with no empty part. Any violation is ErrBadFolds with context.
func validateFolds(folds [][]int, n, k int) error {
	if len(folds) != k {
		return fmt.Errorf("%w: got %d parts, want %d", ErrBadFolds, len(folds), k)
	}
	seen := make([]bool, n)
	total := 0
	for f, part := range folds {
		if len(part) == 0 {
			return fmt.Errorf("%w: part %d is empty", ErrBadFolds, f)
		}
		for _, idx := range part {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: index %d out of range [0,%d)", ErrBadFolds, idx, n)
			}
			if seen[idx] {
				return fmt.Errorf("%w: index %d appears twice", ErrBadFolds, idx)
			}
			seen[idx] = true
			total++
		}
	}
	if total != n {
		return fmt.Errorf("%w: covers %d of %d rows", ErrBadFolds, total, n)
	}
	return nil
}

// split partitions the row indices into held-in and held-out sets for one
// fold. The held-in order follows the original row order, keeping fold
// evaluation deterministic.
func split(n int, holdOut []int) (train, val []int) {
	out := make([]bool, n)
	for _, idx := range holdOut {
		out[idx] = true
	}
	train = make([]int, 0, n-len(holdOut))
	for i := 0; i < n; i++ {
		if !out[i] {
			train = append(train, i)
		}
	}
	return train, holdOut
}
