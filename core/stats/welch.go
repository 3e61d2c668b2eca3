// core/stats/welch.go
package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Alpha is the significance threshold used throughout the engine.
const Alpha = 0.05

// ErrInsufficientReplicates is returned when a tested sample has n < 2.
// The test is skipped, never fabricated.
var ErrInsufficientReplicates = errors.New("stats: fewer than 2 replicates")

// WelchResult reports Welch's unequal-variance t-test.
type WelchResult struct {
	T  float64
	DF float64 // Welch–Satterthwaite degrees of freedom
	P  float64 // two-tailed
}

// Welch runs Welch's t-test between two samples. Both sides need n ≥ 2.
// Degenerate inputs follow fixed rules rather than erroring: two
// zero-variance samples give p=1 for equal means and p=0 otherwise, and a
// zero standard error with distinct means gives p=0.
// Symmetric: Welch(x, y) and Welch(y, x) report the same p.
func Welch(x, y []float64) (WelchResult, error) {
	if len(x) < 2 || len(y) < 2 {
		return WelchResult{T: math.NaN(), DF: math.NaN(), P: math.NaN()}, ErrInsufficientReplicates
	}

	a := Describe(x)
	b := Describe(y)

	if a.Variance == 0 && b.Variance == 0 {
		if a.Mean == b.Mean {
			return WelchResult{P: 1}, nil
		}
		return WelchResult{T: math.Inf(sign(a.Mean - b.Mean)), P: 0}, nil
	}

	n1 := float64(a.N)
	n2 := float64(b.N)
	w1 := a.Variance / n1
	w2 := b.Variance / n2
	se := math.Sqrt(w1 + w2)
	if se == 0 {
		return WelchResult{T: math.Inf(sign(a.Mean - b.Mean)), P: 0}, nil
	}

	t := (a.Mean - b.Mean) / se
	df := (w1 + w2) * (w1 + w2) / (w1*w1/(n1-1) + w2*w2/(n2-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))
	if p > 1 {
		p = 1
	}
	return WelchResult{T: t, DF: df, P: p}, nil
}

// Significance maps a p-value to the conventional star label.
func Significance(p float64) string {
	switch {
	case p > 0.05:
		return "ns"
	case p <= 0.0001:
		return "****"
	case p <= 0.001:
		return "***"
	case p <= 0.01:
		return "**"
	default:
		return "*"
	}
}

func sign(d float64) int {
	if d < 0 {
		return -1
	}
	return 1
}
