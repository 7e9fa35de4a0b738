package writers

import (
	"encoding/json"
	"io"

	"tesscross-core/match"
	"tesscross/pkg/api"
)

// WriteDiagnostics serializes diagnostics as JSONL in the v1 schema.
func WriteDiagnostics(w io.Writer, runID string, diags []match.Diagnostic) error {
	enc := json.NewEncoder(w)
	for _, d := range diags {
		rec := api.DiagnosticV1{
			RunID:      runID,
			FlareIndex: d.FlareIndex,
			FlareID:    d.FlareID,
			SectorID:   d.SectorID,
			Reason:     d.Reason,
			Detail:     d.Detail,
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
