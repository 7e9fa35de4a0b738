package output

import (
	"encoding/csv"
	"io"

	"tesscross-core/catalog"
)

// WriteCSV writes records as RFC 4180 CSV.
func WriteCSV(w io.Writer, list []catalog.FlareRecord, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(CSVHeader); err != nil {
			return err
		}
	}
	for _, r := range list {
		if err := cw.Write(CSVRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
