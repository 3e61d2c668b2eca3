// internal/output/common.go
package output

import (
	"strconv"

	"rqpcr-core/analysis"
	"rqpcr/pkg/api"
)

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all tabular writers use it.
const TSVHeader = "gene\tanova_p\tgroup\tcontrol\tn\tmean\tsd\tsem\tp_value\tsignificance\tletters"

// ToAPI converts a domain analysis result to the stable wire schema (v1).
func ToAPI(r analysis.Result) api.AnalysisResultV1 {
	v := api.AnalysisResultV1{
		GeneID:   r.GeneID,
		GeneName: r.GeneName,
		AnovaP:   r.AnovaP,
	}
	for _, g := range r.Groups {
		v.Groups = append(v.Groups, api.GroupStatV1{
			GroupID:      g.GroupID,
			GroupName:    g.GroupName,
			Control:      g.Control,
			N:            g.N,
			Values:       append([]float64(nil), g.Values...),
			Mean:         g.Mean,
			SD:           g.SD,
			SEM:          g.SEM,
			PValue:       g.P,
			Significance: g.Significance,
			Letters:      g.Letters,
		})
	}
	for _, f := range r.Fallbacks {
		v.Fallbacks = append(v.Fallbacks, api.FallbackV1{GroupA: f.A, GroupB: f.B})
	}
	return v
}

// ToAPIList converts a result set, preserving order.
func ToAPIList(list []analysis.Result) []api.AnalysisResultV1 {
	out := make([]api.AnalysisResultV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPI(r))
	}
	return out
}

// num renders a float for tabular output.
func num(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }

// optNum renders an optional p-value; absent values print empty.
func optNum(v *float64) string {
	if v == nil {
		return ""
	}
	return num(*v)
}

// rows flattens results into one tabular row per (gene, group), matching
// TSVHeader column order.
func rows(list []api.AnalysisResultV1) [][]string {
	var out [][]string
	for _, r := range list {
		for _, g := range r.Groups {
			out = append(out, []string{
				r.GeneName,
				optNum(r.AnovaP),
				g.GroupName,
				strconv.FormatBool(g.Control),
				strconv.Itoa(g.N),
				num(g.Mean),
				num(g.SD),
				num(g.SEM),
				optNum(g.PValue),
				g.Significance,
				g.Letters,
			})
		}
	}
	return out
}
