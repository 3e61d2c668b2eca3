// pkg/api/results_v1.go
package api

// GroupStatV1 is the stable per-group schema within an analysis result.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type GroupStatV1 struct {
	GroupID   string    `json:"group_id"`
	GroupName string    `json:"group_name"`
	Control   bool      `json:"control"`
	N         int       `json:"n"`
	Values    []float64 `json:"values,omitempty"`
	Mean      float64   `json:"mean"`
	SD        float64   `json:"sd"`
	SEM       float64   `json:"sem"`

	// Present on the non-control group of a 2-group analysis.
	PValue       *float64 `json:"p_value,omitempty"`
	Significance string   `json:"significance,omitempty"`

	// Present on every group of an N-group analysis with a significant
	// omnibus.
	Letters string `json:"letters,omitempty"`
}

// AnalysisResultV1 is the stable JSON schema for one target gene.
type AnalysisResultV1 struct {
	GeneID    string        `json:"gene_id"`
	GeneName  string        `json:"gene_name"`
	AnovaP    *float64      `json:"anova_p,omitempty"`
	Groups    []GroupStatV1 `json:"groups"`
	Fallbacks []FallbackV1  `json:"fallbacks,omitempty"`
}

// FallbackV1 names a pair whose Welch test could not run and was treated
// as non-significant during letter assignment.
type FallbackV1 struct {
	GroupA string `json:"group_a"`
	GroupB string `json:"group_b"`
}

// CurveFitV1 is the stable schema for a standard-curve calibration.
type CurveFitV1 struct {
	Slope             float64 `json:"slope"`
	Intercept         float64 `json:"intercept"`
	R2                float64 `json:"r2"`
	Efficiency        float64 `json:"efficiency"`
	PercentEfficiency float64 `json:"percent_efficiency"`
	EfficiencyRating  string  `json:"efficiency_rating"`
	R2Rating          string  `json:"r2_rating"`
	Status            string  `json:"status"`
}
