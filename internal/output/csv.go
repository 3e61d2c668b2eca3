// internal/output/csv.go
package output

import (
	"encoding/csv"
	"io"
	"strings"

	"rqpcr/pkg/api"
)

// WriteCSV renders the same rows as WriteText in RFC-4180 CSV.
func WriteCSV(w io.Writer, list []api.AnalysisResultV1, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(strings.Split(TSVHeader, "\t")); err != nil {
			return err
		}
	}
	for _, row := range rows(list) {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
