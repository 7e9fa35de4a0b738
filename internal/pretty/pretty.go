// Package pretty renders an ASCII timeline block for a matched flare,
// placing the flare epoch inside each matched sector window.
package pretty

import (
	"fmt"
	"strings"

	"tesscross-core/catalog"
	"tesscross-core/sector"
)

// barWidth is the inner width of the window bar.
const barWidth = 21

// RenderMatch returns a comment block visualizing where the flare epoch
// falls inside each matched window. Unknown sector IDs render without a
// bar; duplicates render once per occurrence, mirroring the match list.
func RenderMatch(r catalog.FlareRecord, tab *sector.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s  ra=%.4f dec=%.4f mjd=%.4f\n", displayID(r), r.RA, r.Dec, r.MJD)
	for _, id := range r.Matched {
		w, ok := tab.Lookup(id)
		if !ok {
			fmt.Fprintf(&b, "#   s%04d  (window unknown)\n", id)
			continue
		}
		fmt.Fprintf(&b, "#   s%04d  %.2f %s %.2f\n", id, w.Start, bar(w, r.MJD), w.End)
	}
	return b.String()
}

func displayID(r catalog.FlareRecord) string {
	if r.ID != "" {
		return r.ID
	}
	return "(unnamed)"
}

// bar draws |----*----| with the star at the epoch's relative position.
func bar(w sector.Window, t float64) string {
	cells := make([]byte, barWidth)
	for i := range cells {
		cells[i] = '-'
	}
	span := w.End - w.Start
	pos := 0
	if span > 0 {
		pos = int((t - w.Start) / span * float64(barWidth-1))
	}
	if pos < 0 {
		pos = 0
	}
	if pos > barWidth-1 {
		pos = barWidth - 1
	}
	cells[pos] = '*'
	return "|" + string(cells) + "|"
}
