// core/quant/quant.go
// Efficiency-corrected relative quantification with geometric-mean
// normalization against reference genes.
//
// Steps per target gene:
//  1) Baseline per gene = mean Ct over control samples with a measurement.
//  2) Relative quantity Q = E^(baseline − Ct); 0 without a measurement or
//     baseline (baseline 0 is the "no signal" sentinel).
//  3) Normalization factor per sample = geometric mean of Q over the
//     reference genes with Q > 0; 0 when none qualifies.
//  4) Normalized expression = Q_target / factor when both are > 0;
//     otherwise the sample is excluded from that target's vectors, so n
//     may differ between target genes.
package quant

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"rqpcr-core/assay"
)

// GroupValues is the normalized expression vector of one group for one
// target gene. Values keeps sample input order; excluded samples are
// simply absent.
type GroupValues struct {
	Group  assay.Group
	Values []float64
}

// TargetExpression is the per-group expression of one target gene.
type TargetExpression struct {
	Gene   assay.Gene
	Groups []GroupValues
}

// Compute derives normalized expression for every target gene across all
// groups. Inputs are read-only; group and gene order is preserved.
// Preconditions (control group, reference genes, non-empty groups and
// samples) are signaled via the assay sentinel errors.
func Compute(genes []assay.Gene, groups []assay.Group, samples []assay.Sample) ([]TargetExpression, error) {
	if len(groups) == 0 {
		return nil, assay.ErrNoGroups
	}
	if len(samples) == 0 {
		return nil, assay.ErrNoSamples
	}
	refs := assay.ReferenceGenes(genes)
	if len(refs) == 0 {
		return nil, assay.ErrNoReferenceGene
	}
	control, err := assay.ControlGroup(groups)
	if err != nil {
		return nil, err
	}

	base := Baselines(genes, samples, control)

	// Per-sample relative quantities, then normalization factors.
	q := make([]map[string]float64, len(samples))
	factor := make([]float64, len(samples))
	for i, s := range samples {
		q[i] = make(map[string]float64, len(genes))
		for _, g := range genes {
			q[i][g.ID] = Quantity(g, base[g.ID], s)
		}
		factor[i] = normFactor(refs, q[i])
	}

	var out []TargetExpression
	for _, g := range assay.Targets(genes) {
		te := TargetExpression{Gene: g, Groups: make([]GroupValues, len(groups))}
		for gi, grp := range groups {
			te.Groups[gi].Group = grp
		}
		idx := make(map[string]int, len(groups))
		for gi, grp := range groups {
			idx[grp.ID] = gi
		}
		for si, s := range samples {
			gi, ok := idx[s.GroupID]
			if !ok {
				continue // sample points at an unknown group; loader rejects this upstream
			}
			qt := q[si][g.ID]
			if qt <= 0 || factor[si] <= 0 {
				continue
			}
			te.Groups[gi].Values = append(te.Groups[gi].Values, qt/factor[si])
		}
		out = append(out, te)
	}
	return out, nil
}

// Baselines computes, for every gene, the mean Ct across control-group
// samples that carry a measurement. A gene with no measured control
// sample gets baseline 0 ("no signal").
func Baselines(genes []assay.Gene, samples []assay.Sample, control assay.Group) map[string]float64 {
	out := make(map[string]float64, len(genes))
	for _, g := range genes {
		var sum float64
		n := 0
		for _, s := range samples {
			if s.GroupID != control.ID {
				continue
			}
			if ct, ok := s.Ct(g.ID); ok {
				sum += ct
				n++
			}
		}
		if n > 0 {
			out[g.ID] = sum / float64(n)
		} else {
			out[g.ID] = 0
		}
	}
	return out
}

// Quantity returns the efficiency-corrected relative quantity of gene g
// in sample s against the given baseline: E^(baseline − Ct). ΔCt runs
// baseline-minus-observed, so expression above baseline gives Q > 1.
func Quantity(g assay.Gene, baseline float64, s assay.Sample) float64 {
	ct, ok := s.Ct(g.ID)
	if !ok || baseline == 0 {
		return 0
	}
	return math.Pow(g.Efficiency, baseline-ct)
}

// normFactor is the geometric mean of the reference-gene quantities that
// are > 0 for one sample; 0 when no reference gene qualifies.
func normFactor(refs []assay.Gene, q map[string]float64) float64 {
	var pos []float64
	for _, r := range refs {
		if v := q[r.ID]; v > 0 {
			pos = append(pos, v)
		}
	}
	if len(pos) == 0 {
		return 0
	}
	return stat.GeometricMean(pos, nil)
}
