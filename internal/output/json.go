// internal/output/json.go
package output

import (
	"io"

	"rqpcr/internal/jsonutil"
	"rqpcr/pkg/api"
)

// WriteJSON writes a single JSON array of v1 results (pretty-indented).
func WriteJSON(w io.Writer, list []api.AnalysisResultV1) error {
	return jsonutil.EncodePretty(w, list)
}

// WriteCurveJSON writes one v1 curve fit.
func WriteCurveJSON(w io.Writer, fit api.CurveFitV1) error {
	return jsonutil.EncodePretty(w, fit)
}
