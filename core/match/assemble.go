package match

import "tesscross-core/catalog"

// Assemble filters the matched catalog down to flares with at least one
// matched sector, preserving relative order. Pure and idempotent; the
// returned slice shares record values but never mutates them.
func Assemble(flares []catalog.FlareRecord) []catalog.FlareRecord {
	var out []catalog.FlareRecord
	for _, f := range flares {
		if len(f.Matched) > 0 {
			out = append(out, f)
		}
	}
	return out
}
