// core/stats/anova.go
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ANOVAResult reports a one-way F-test across k group samples.
type ANOVAResult struct {
	F   float64
	DF1 float64 // between groups: k−1
	DF2 float64 // within groups: N−k
	P   float64
}

// OneWayANOVA runs the omnibus F-test over k ≥ 2 groups, each requiring
// n ≥ 2. All-degenerate inputs mirror the Welch rules: zero within-group
// scatter gives p=1 when the means also agree and p=0 otherwise.
func OneWayANOVA(groups [][]float64) (ANOVAResult, error) {
	if len(groups) < 2 {
		return ANOVAResult{F: math.NaN(), P: math.NaN()}, ErrInsufficientReplicates
	}
	total := 0
	for _, g := range groups {
		if len(g) < 2 {
			return ANOVAResult{F: math.NaN(), P: math.NaN()}, ErrInsufficientReplicates
		}
		total += len(g)
	}

	var grand float64
	for _, g := range groups {
		for _, v := range g {
			grand += v
		}
	}
	grand /= float64(total)

	var ssb, ssw float64
	for _, g := range groups {
		m := stat.Mean(g, nil)
		ssb += float64(len(g)) * (m - grand) * (m - grand)
		for _, v := range g {
			ssw += (v - m) * (v - m)
		}
	}

	k := float64(len(groups))
	df1 := k - 1
	df2 := float64(total) - k

	if ssw == 0 {
		if ssb == 0 {
			return ANOVAResult{DF1: df1, DF2: df2, P: 1}, nil
		}
		return ANOVAResult{F: math.Inf(1), DF1: df1, DF2: df2, P: 0}, nil
	}

	f := (ssb / df1) / (ssw / df2)
	dist := distuv.F{D1: df1, D2: df2}
	return ANOVAResult{F: f, DF1: df1, DF2: df2, P: dist.Survival(f)}, nil
}
