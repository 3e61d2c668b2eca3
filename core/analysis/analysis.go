// core/analysis/analysis.go
// Group-comparison orchestration: quantify, describe, then pick the
// statistical path by group count (Welch for 2 groups, one-way ANOVA plus
// compact letter display beyond that).
package analysis

import (
	"rqpcr-core/assay"
	"rqpcr-core/cld"
	"rqpcr-core/quant"
	"rqpcr-core/stats"
)

// GroupStats is the annotated result for one group under one target gene.
type GroupStats struct {
	GroupID   string
	GroupName string
	Control   bool
	N         int
	Values    []float64
	Mean      float64
	SD        float64
	SEM       float64

	// Two-group path: Welch p and star label on the non-control group.
	P            *float64
	Significance string

	// N-group path: compact letter display marking.
	Letters string
}

// Result is the full analysis of one target gene.
type Result struct {
	GeneID   string
	GeneName string
	AnovaP   *float64
	Groups   []GroupStats

	// Pairwise tests that fell back to "non-significant" during letter
	// assignment (insufficient replicates on a side).
	Fallbacks []cld.Fallback
}

// Compute is the whole pipeline as a pure function: it takes an immutable
// snapshot of the experiment and produces a fresh result set, one entry
// per target gene in input order. Per-gene and per-comparison
// preconditions suppress only the affected annotation; snapshot-level
// preconditions (no control group, no reference gene, empty inputs)
// surface as errors from quant.Compute.
func Compute(genes []assay.Gene, groups []assay.Group, samples []assay.Sample) ([]Result, error) {
	expr, err := quant.Compute(genes, groups, samples)
	if err != nil {
		return nil, err
	}

	out := make([]Result, 0, len(expr))
	for _, te := range expr {
		r := Result{GeneID: te.Gene.ID, GeneName: te.Gene.Name}
		for _, gv := range te.Groups {
			s := stats.Describe(gv.Values)
			r.Groups = append(r.Groups, GroupStats{
				GroupID:   gv.Group.ID,
				GroupName: gv.Group.Name,
				Control:   gv.Group.Control,
				N:         s.N,
				Values:    gv.Values,
				Mean:      s.Mean,
				SD:        s.SD,
				SEM:       s.SEM,
			})
		}

		switch len(te.Groups) {
		case 0, 1:
			// Nothing to compare.
		case 2:
			annotatePairwise(&r, te)
		default:
			annotateOmnibus(&r, te)
		}
		out = append(out, r)
	}
	return out, nil
}

// annotatePairwise runs one Welch test, non-control against control, and
// annotates only the non-control group. A side with n < 2 skips the test.
func annotatePairwise(r *Result, te quant.TargetExpression) {
	ci, ti := -1, -1
	for i, gv := range te.Groups {
		if gv.Group.Control {
			ci = i
		} else {
			ti = i
		}
	}
	if ci < 0 || ti < 0 {
		return
	}
	w, err := stats.Welch(te.Groups[ti].Values, te.Groups[ci].Values)
	if err != nil {
		return
	}
	p := w.P
	r.Groups[ti].P = &p
	r.Groups[ti].Significance = stats.Significance(p)
}

// annotateOmnibus runs the one-way ANOVA across all groups. Below the
// significance threshold every group shares the letter "a" and pairwise
// testing is skipped; otherwise letters come from the clique engine.
func annotateOmnibus(r *Result, te quant.TargetExpression) {
	vectors := make([][]float64, len(te.Groups))
	for i, gv := range te.Groups {
		vectors[i] = gv.Values
	}
	a, err := stats.OneWayANOVA(vectors)
	if err != nil {
		return // some group below n=2: no global p, no letters
	}
	p := a.P
	r.AnovaP = &p

	if p >= stats.Alpha {
		for i := range r.Groups {
			r.Groups[i].Letters = "a"
		}
		return
	}

	cgs := make([]cld.Group, len(te.Groups))
	for i, gv := range te.Groups {
		cgs[i] = cld.Group{Key: gv.Group.ID, Mean: r.Groups[i].Mean, Values: gv.Values}
	}
	letters, fb, err := cld.Assign(cgs)
	if err != nil {
		return
	}
	for i := range r.Groups {
		r.Groups[i].Letters = letters[r.Groups[i].GroupID]
	}
	r.Fallbacks = fb
}
