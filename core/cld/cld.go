// core/cld/cld.go
// Compact letter display over pairwise Welch tests: two groups share a
// letter iff they sit in the same maximal clique of the mutual
// non-significance graph. The relation is not transitive, so a group may
// carry several letters.
package cld

import (
	"errors"
	"math/bits"
	"sort"

	"rqpcr-core/stats"
)

// MaxGroups bounds the clique search; adjacency sets live in uint64
// bitmasks.
const MaxGroups = 64

// ErrTooManyGroups is returned when more than MaxGroups groups are passed.
var ErrTooManyGroups = errors.New("cld: more than 64 groups")

// Group is one letter-marking candidate: a stable key plus its normalized
// expression vector.
type Group struct {
	Key    string
	Mean   float64
	Values []float64
}

// Fallback records one pair whose Welch test could not run (n < 2 on a
// side) and was therefore treated as non-significant. Keys are the group
// keys as passed in.
type Fallback struct {
	A, B string
}

// Assign computes the letter marking per group key. Failed pairwise tests
// connect their pair conservatively and are reported in the second return
// value so callers and tests can see the fallback was taken.
func Assign(groups []Group) (map[string]string, []Fallback, error) {
	n := len(groups)
	if n == 0 {
		return map[string]string{}, nil, nil
	}
	if n > MaxGroups {
		return nil, nil, ErrTooManyGroups
	}

	// Descending mean, stable so ties keep input order; letter 'a' then
	// tracks the highest-expression group by convention.
	sorted := make([]Group, n)
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Mean > sorted[j].Mean })

	adj, fb := buildGraph(sorted)
	cliques := maximalCliques(adj, n)

	// Order cliques by their smallest sorted-index member.
	sort.SliceStable(cliques, func(i, j int) bool {
		return bits.TrailingZeros64(cliques[i]) < bits.TrailingZeros64(cliques[j])
	})

	perGroup := make([][]byte, n)
	for ci, c := range cliques {
		l := letter(ci)
		for m := c; m != 0; m &= m - 1 {
			i := bits.TrailingZeros64(m)
			perGroup[i] = append(perGroup[i], l)
		}
	}

	out := make(map[string]string, n)
	for i, g := range sorted {
		ls := perGroup[i]
		sort.Slice(ls, func(a, b int) bool { return ls[a] < ls[b] })
		out[g.Key] = string(ls)
	}
	return out, fb, nil
}

// buildGraph returns the non-significance adjacency over the sorted
// groups: an edge is present iff the pairwise Welch p exceeds Alpha. A
// pair whose test cannot run takes the explicit fallback branch (edge
// present) instead of aborting letter assignment.
func buildGraph(sorted []Group) ([]uint64, []Fallback) {
	n := len(sorted)
	adj := make([]uint64, n)
	var fb []Fallback
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r, err := stats.Welch(sorted[i].Values, sorted[j].Values)
			connected := false
			switch {
			case err != nil:
				connected = true
				fb = append(fb, Fallback{A: sorted[i].Key, B: sorted[j].Key})
			case r.P > stats.Alpha:
				connected = true
			}
			if connected {
				adj[i] |= 1 << uint(j)
				adj[j] |= 1 << uint(i)
			}
		}
	}
	return adj, fb
}

// maximalCliques enumerates all maximal cliques via Bron–Kerbosch. The
// candidate (p) and excluded (x) sets are plain bitmask values, so each
// recursive branch works on its own copies; nothing is shared or
// mutated across branches.
func maximalCliques(adj []uint64, n int) []uint64 {
	var out []uint64
	var bk func(r, p, x uint64)
	bk = func(r, p, x uint64) {
		if p == 0 && x == 0 {
			out = append(out, r)
			return
		}
		for cand := p; cand != 0; {
			v := bits.TrailingZeros64(cand)
			vb := uint64(1) << uint(v)
			bk(r|vb, p&adj[v], x&adj[v])
			p &^= vb
			x |= vb
			cand = p
		}
	}
	var all uint64
	if n == 64 {
		all = ^uint64(0)
	} else {
		all = (uint64(1) << uint(n)) - 1
	}
	bk(0, all, 0)
	return out
}

// letter maps a clique index to its display letter. Past 'z' the cycle
// wraps to 'a', which duplicates labels; with experiment-scale group
// counts the branch is unreachable.
func letter(i int) byte { return byte('a' + i%26) }
