package output

import (
	"fmt"
	"strconv"
	"strings"

	"tesscross-core/catalog"
	"tesscross/pkg/api"
)

// IntsList renders a sector-ID list as "14,14,15". Empty list renders empty.
func IntsList(a []int) string {
	if len(a) == 0 {
		return ""
	}
	ss := make([]string, len(a))
	for i, v := range a {
		ss[i] = strconv.Itoa(v)
	}
	return strings.Join(ss, ",")
}

// FormatRowTSV returns the 5 base columns (no trailing newline).
// Positions keep 6 decimals (~4 mas), timestamps 6 (~0.1 s).
func FormatRowTSV(r catalog.FlareRecord) string {
	return fmt.Sprintf("%s\t%.6f\t%.6f\t%.6f\t%s",
		r.ID, r.RA, r.Dec, r.MJD, IntsList(r.Matched))
}

// CSVRow returns the record as encoding/csv fields, matching CSVHeader.
func CSVRow(r catalog.FlareRecord) []string {
	return []string{
		r.ID,
		strconv.FormatFloat(r.RA, 'f', 6, 64),
		strconv.FormatFloat(r.Dec, 'f', 6, 64),
		strconv.FormatFloat(r.MJD, 'f', 6, 64),
		IntsList(r.Matched),
	}
}

// ToAPIMatch converts a record to the stable wire schema.
func ToAPIMatch(r catalog.FlareRecord) api.MatchV1 {
	sectors := r.Matched
	if sectors == nil {
		sectors = []int{}
	}
	return api.MatchV1{ID: r.ID, RA: r.RA, Dec: r.Dec, MJD: r.MJD, Sectors: sectors}
}
