// core/assay/assay.go
// Entity model for a relative-quantification experiment: genes, groups,
// samples. The engine packages (quant, analysis) read these and never
// mutate them; ownership stays with the caller.
package assay

import "errors"

// Precondition errors shared by the engine packages. Each suppresses only
// the computation that needs it; callers decide how to surface them.
var (
	ErrNoControlGroup  = errors.New("assay: no control group")
	ErrNoReferenceGene = errors.New("assay: no reference gene")
	ErrNoGroups        = errors.New("assay: no groups")
	ErrNoSamples       = errors.New("assay: no samples")
)

// Role classifies a gene as an analysis target or a normalization reference.
type Role string

const (
	RoleTarget    Role = "target"
	RoleReference Role = "reference"
)

// Gene is one assayed gene. Efficiency is the per-cycle amplification
// factor E (2.0 = ideal doubling; intended range [1,3]).
type Gene struct {
	ID         string
	Name       string
	Role       Role
	Efficiency float64
}

// Group is one experimental condition. Exactly one group should carry
// Control=true at any time; SetControl maintains that invariant.
type Group struct {
	ID      string
	Name    string
	Control bool
	Color   string
}

// Sample is one biological/technical replicate. Cts maps gene ID to the
// measured cycle threshold; a nil entry (explicit null in the source
// document) and an absent key both mean "not measured", which is distinct
// from a measured 0.
type Sample struct {
	ID        string
	GroupID   string
	Replicate int
	Cts       map[string]*float64
}

// Ct returns the measured Ct for geneID, reporting whether a measurement
// exists.
func (s Sample) Ct(geneID string) (float64, bool) {
	v, ok := s.Cts[geneID]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// ControlGroup returns the group marked as control. When the caller has
// let the invariant slip and several are flagged, the first wins.
func ControlGroup(groups []Group) (Group, error) {
	for _, g := range groups {
		if g.Control {
			return g, nil
		}
	}
	return Group{}, ErrNoControlGroup
}

// SetControl marks the group with the given ID as control and clears the
// flag on every other group. Reports whether the ID was found; when it is
// not, the slice is left untouched.
func SetControl(groups []Group, id string) bool {
	found := false
	for i := range groups {
		if groups[i].ID == id {
			found = true
		}
	}
	if !found {
		return false
	}
	for i := range groups {
		groups[i].Control = groups[i].ID == id
	}
	return true
}

// ReferenceGenes returns the genes with RoleReference, in input order.
func ReferenceGenes(genes []Gene) []Gene {
	var out []Gene
	for _, g := range genes {
		if g.Role == RoleReference {
			out = append(out, g)
		}
	}
	return out
}

// Targets returns the genes with RoleTarget, in input order.
func Targets(genes []Gene) []Gene {
	var out []Gene
	for _, g := range genes {
		if g.Role == RoleTarget {
			out = append(out, g)
		}
	}
	return out
}
