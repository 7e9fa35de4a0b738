// Package catalog loads flare-event catalogs into FlareRecords.
//
// Catalogs arrive as CSV with per-survey column spellings; the loader
// normalizes the known variants and sorts records by timestamp.
package catalog

import "sort"

// FlareRecord is one observed flare event.
type FlareRecord struct {
	ID  string  // catalog identifier; may be empty
	RA  float64 // right ascension, degrees (ICRS)
	Dec float64 // declination, degrees (ICRS)
	MJD float64 // detection epoch, Modified Julian Date (UTC)

	// Matched holds the sector IDs found to coincide with this flare.
	// Empty until matching runs; append-only during one run.
	Matched []int
}

// SortByTime orders records ascending by timestamp, ties broken by ID.
func SortByTime(recs []FlareRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].MJD != recs[j].MJD {
			return recs[i].MJD < recs[j].MJD
		}
		return recs[i].ID < recs[j].ID
	})
}
