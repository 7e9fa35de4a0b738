// pkg/api/matches_v1.go
package api

// MatchV1 is the stable JSON/JSONL schema for one matched flare.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type MatchV1 struct {
	ID      string  `json:"id,omitempty"`
	RA      float64 `json:"ra"`
	Dec     float64 `json:"dec"`
	MJD     float64 `json:"mjd"`
	Sectors []int   `json:"sectors"`
}

// MatchListV1 is the stable envelope for buffered JSON output.
type MatchListV1 struct {
	RunID       string    `json:"run_id,omitempty"`
	GeneratedAt string    `json:"generated_at,omitempty"` // RFC 3339, UTC
	Matches     []MatchV1 `json:"matches"`
}

// DiagnosticV1 is the stable schema for one non-fatal matching event.
type DiagnosticV1 struct {
	RunID      string `json:"run_id,omitempty"`
	FlareIndex int    `json:"flare_index"`
	FlareID    string `json:"flare_id,omitempty"`
	SectorID   int    `json:"sector_id,omitempty"`
	Reason     string `json:"reason"`
	Detail     string `json:"detail,omitempty"`
}
