package match

// Diagnostic reasons.
const (
	ReasonNoCoverage    = "no_coverage"
	ReasonNoTimeOverlap = "no_time_overlap"
	ReasonUnknownSector = "unknown_sector"
)

// Diagnostic is one structured, non-fatal event surfaced alongside the
// matching result.
type Diagnostic struct {
	FlareIndex int    `json:"flare_index"`
	FlareID    string `json:"flare_id,omitempty"`
	SectorID   int    `json:"sector_id,omitempty"`
	Reason     string `json:"reason"`
	Detail     string `json:"detail,omitempty"`
}
