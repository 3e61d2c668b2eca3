package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rqpcr-core/analysis"
	"rqpcr-core/cld"
	"rqpcr/pkg/api"
)

func fp(v float64) *float64 { return &v }

func sampleResults() []api.AnalysisResultV1 {
	return ToAPIList([]analysis.Result{
		{
			GeneID:   "il6",
			GeneName: "IL6",
			Groups: []analysis.GroupStats{
				{GroupID: "ctrl", GroupName: "Control", Control: true, N: 3,
					Values: []float64{1.01, 0.91, 1.08}, Mean: 1.0, SD: 0.086, SEM: 0.05},
				{GroupID: "trt", GroupName: "Treated", N: 3,
					Values: []float64{3.9, 4.0, 4.6}, Mean: 4.2, SD: 0.39, SEM: 0.23,
					P: fp(0.004), Significance: "**"},
			},
		},
	})
}

func TestToAPI_CarriesFallbacks(t *testing.T) {
	v := ToAPI(analysis.Result{
		GeneID:    "g",
		Fallbacks: []cld.Fallback{{A: "x", B: "y"}},
	})
	require.Len(t, v.Fallbacks, 1)
	assert.Equal(t, "x", v.Fallbacks[0].GroupA)
	assert.Equal(t, "y", v.Fallbacks[0].GroupB)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleResults(), true))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, TSVHeader, lines[0])

	ctrl := strings.Split(lines[1], "\t")
	require.Len(t, ctrl, 11)
	assert.Equal(t, "IL6", ctrl[0])
	assert.Equal(t, "Control", ctrl[2])
	assert.Equal(t, "true", ctrl[3])
	assert.Equal(t, "", ctrl[8], "control row has no p-value")

	trt := strings.Split(lines[2], "\t")
	assert.Equal(t, "0.004", trt[8])
	assert.Equal(t, "**", trt[9])
}

func TestWriteText_NoHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleResults(), false))
	assert.False(t, strings.HasPrefix(buf.String(), "gene\t"))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults(), true))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.ReplaceAll(TSVHeader, "\t", ","), lines[0])
	assert.Contains(t, lines[2], "Treated")
}

func TestWriteJSON_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResults()))

	var back []api.AnalysisResultV1
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back, 1)
	assert.Equal(t, "il6", back[0].GeneID)
	require.Len(t, back[0].Groups, 2)
	assert.Nil(t, back[0].Groups[0].PValue)
	require.NotNil(t, back[0].Groups[1].PValue)
	assert.Equal(t, 0.004, *back[0].Groups[1].PValue)
}

func TestWriteCurveText(t *testing.T) {
	var buf bytes.Buffer
	fit := api.CurveFitV1{
		Slope: -3.32193, Intercept: 20, R2: 1,
		Efficiency: 2, PercentEfficiency: 100,
		EfficiencyRating: "excellent", R2Rating: "good", Status: "success",
	}
	require.NoError(t, WriteCurveText(&buf, fit))
	out := buf.String()
	assert.Contains(t, out, "slope\t-3.32193\n")
	assert.Contains(t, out, "status\tsuccess\n")
}
