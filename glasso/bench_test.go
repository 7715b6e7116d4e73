package glasso_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/robnet/glasso"
)

// BenchmarkSolvePath measures a default 10-point path on an AR(1)
// covariance of growing dimension.
func BenchmarkSolvePath(b *testing.B) {
	for _, p := range []int{10, 20, 40} {
		sigma := mat.NewSymDense(p, nil)
		for i := 0; i < p; i++ {
			for j := i; j < p; j++ {
				sigma.SetSym(i, j, math.Pow(0.5, float64(j-i)))
			}
		}
		b.Run(benchName(p), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := (glasso.Solver{}).SolvePath(sigma, nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func benchName(p int) string {
	switch p {
	case 10:
		return "p=10"
	case 20:
		return "p=20"
	default:
		return "p=40"
	}
}
