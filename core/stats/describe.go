// core/stats/describe.go
// Descriptive and inferential statistics for group expression vectors.
// All sample statistics use the n−1 divisor.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary holds the descriptive statistics of one numeric sample.
type Summary struct {
	N        int
	Mean     float64
	Variance float64 // sample variance (n−1); 0 when n ≤ 1
	SD       float64
	SEM      float64 // SD/√n; 0 when n = 0
}

// Describe computes mean, sample variance, SD and SEM over xs.
func Describe(xs []float64) Summary {
	n := len(xs)
	if n == 0 {
		return Summary{}
	}
	s := Summary{N: n, Mean: stat.Mean(xs, nil)}
	if n > 1 {
		s.Variance = stat.Variance(xs, nil)
		s.SD = math.Sqrt(s.Variance)
		s.SEM = s.SD / math.Sqrt(float64(n))
	}
	return s
}
