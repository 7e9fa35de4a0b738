package common

import (
	"sort"

	"tesscross-core/catalog"
)

// SortRecords defines the stable order used by --sort: timestamp, then ID,
// then position. Deterministic across runs regardless of worker scheduling.
func SortRecords(recs []catalog.FlareRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.MJD != b.MJD {
			return a.MJD < b.MJD
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		if a.RA != b.RA {
			return a.RA < b.RA
		}
		return a.Dec < b.Dec
	})
}
