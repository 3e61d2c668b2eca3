// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strings"

	"rqpcr/pkg/api"
)

// WriteText prints one TSV line per (gene, group) row.
func WriteText(w io.Writer, list []api.AnalysisResultV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, row := range rows(list) {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// WriteCurveText prints a standard-curve fit as aligned key/value lines.
func WriteCurveText(w io.Writer, fit api.CurveFitV1) error {
	_, err := fmt.Fprintf(w,
		"slope\t%s\nintercept\t%s\nr2\t%s\nefficiency\t%s\npercent_efficiency\t%s\nefficiency_rating\t%s\nr2_rating\t%s\nstatus\t%s\n",
		num(fit.Slope), num(fit.Intercept), num(fit.R2),
		num(fit.Efficiency), num(fit.PercentEfficiency),
		fit.EfficiencyRating, fit.R2Rating, fit.Status,
	)
	return err
}
