// Package sector models TESS observation sectors: per-sector time windows
// aggregated from the orbit-level schedule, keyed lookup, and the candidate
// filter that prunes sectors outside the catalog's time span.
package sector

import "sort"

// Window is one sector's active time span in MJD (UTC).
// Start <= End holds after aggregation.
type Window struct {
	ID     int
	Start  float64
	End    float64
	Orbits int // orbit rows folded into this window
}

// Contains reports strict-open containment: Start < t < End.
// Boundary equality is deliberately not a match.
func (w Window) Contains(t float64) bool {
	return w.Start < t && t < w.End
}

// Overlaps reports whether the window intersects [tmin, tmax] (inclusive).
func (w Window) Overlaps(tmin, tmax float64) bool {
	return w.Start <= tmax && w.End >= tmin
}

// Set is a set of sector IDs.
type Set map[int]struct{}

func (s Set) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members in ascending order.
func (s Set) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Table is the aggregated sector schedule: one Window per sector ID,
// sorted ascending by Start.
type Table struct {
	windows []Window
	byID    map[int]Window
}

// NewTable aggregates windows sharing an ID (min Start, max End, summed
// Orbits) and returns the table sorted by Start.
func NewTable(windows []Window) *Table {
	byID := make(map[int]Window, len(windows))
	for _, w := range windows {
		prev, ok := byID[w.ID]
		if !ok {
			if w.Orbits == 0 {
				w.Orbits = 1
			}
			byID[w.ID] = w
			continue
		}
		if w.Start < prev.Start {
			prev.Start = w.Start
		}
		if w.End > prev.End {
			prev.End = w.End
		}
		if w.Orbits == 0 {
			prev.Orbits++
		} else {
			prev.Orbits += w.Orbits
		}
		byID[w.ID] = prev
	}

	agg := make([]Window, 0, len(byID))
	for _, w := range byID {
		agg = append(agg, w)
	}
	sort.Slice(agg, func(i, j int) bool {
		if agg[i].Start != agg[j].Start {
			return agg[i].Start < agg[j].Start
		}
		return agg[i].ID < agg[j].ID
	})
	return &Table{windows: agg, byID: byID}
}

// Windows returns the aggregated windows sorted by Start.
// The slice is shared; callers must not mutate it.
func (t *Table) Windows() []Window { return t.windows }

// Len returns the number of aggregated sectors.
func (t *Table) Len() int { return len(t.windows) }

// Lookup returns the window for a sector ID.
func (t *Table) Lookup(id int) (Window, bool) {
	w, ok := t.byID[id]
	return w, ok
}

// Candidates returns the set of sector IDs whose window intersects
// [tmin, tmax]. Pure function of the table and the two bounds; an empty
// table or a non-overlapping span yields the empty set.
func (t *Table) Candidates(tmin, tmax float64) Set {
	s := make(Set)
	for _, w := range t.windows {
		if w.Overlaps(tmin, tmax) {
			s[w.ID] = struct{}{}
		}
	}
	return s
}
