// Package match implements the flare/sector coincidence matcher: candidate
// pruning over the catalog's time span, per-flare coverage lookup, and the
// strict-open time-containment test.
package match

import (
	"context"

	"tesscross-core/catalog"
	"tesscross-core/sector"
)

// CoverageSource answers which of the candidate sectors have pixel data at
// a sky position. Hits may repeat a sector ID (one hit per camera/CCD is
// common); each hit is tested independently. An error means the service
// could not answer for this position; absence of data is a valid empty
// result, not an error.
type CoverageSource interface {
	Sectors(ctx context.Context, ra, dec float64, candidates sector.Set) ([]int, error)
}

// BoundsMode selects how the catalog's time span is derived.
type BoundsMode int

const (
	// BoundsEndpoints takes the span from the first and last rows of the
	// flare sequence in input order. This reproduces the historical
	// behavior and is wrong on unsorted input; it is the default because
	// the loader sorts.
	BoundsEndpoints BoundsMode = iota
	// BoundsScan takes the true min/max over all timestamps.
	BoundsScan
)

// Config controls one matching run.
type Config struct {
	Bounds BoundsMode
	// Dedupe collapses repeated sector IDs arising from duplicate
	// coverage hits. Off by default: the historical behavior keeps
	// duplicates, and changing that silently would alter results.
	Dedupe bool
}

// Engine matches flares against the aggregated sector table.
type Engine struct {
	cfg Config
	tab *sector.Table
	src CoverageSource
}

func New(cfg Config, tab *sector.Table, src CoverageSource) *Engine {
	return &Engine{cfg: cfg, tab: tab, src: src}
}

// Bounds returns the catalog time span per the configured mode.
// ok is false for an empty catalog.
func (e *Engine) Bounds(flares []catalog.FlareRecord) (tmin, tmax float64, ok bool) {
	if len(flares) == 0 {
		return 0, 0, false
	}
	switch e.cfg.Bounds {
	case BoundsScan:
		tmin, tmax = flares[0].MJD, flares[0].MJD
		for _, f := range flares[1:] {
			if f.MJD < tmin {
				tmin = f.MJD
			}
			if f.MJD > tmax {
				tmax = f.MJD
			}
		}
	default:
		tmin, tmax = flares[0].MJD, flares[len(flares)-1].MJD
	}
	return tmin, tmax, true
}

// Candidates computes the global candidate sector set for the catalog.
func (e *Engine) Candidates(flares []catalog.FlareRecord) sector.Set {
	tmin, tmax, ok := e.Bounds(flares)
	if !ok {
		return sector.Set{}
	}
	return e.tab.Candidates(tmin, tmax)
}

// MatchOne resolves the matched sectors for a single flare. It never
// returns an error: lookup and consistency failures are isolated into
// diagnostics and the flare simply ends with fewer (or zero) matches.
func (e *Engine) MatchOne(ctx context.Context, idx int, f catalog.FlareRecord, candidates sector.Set) ([]int, []Diagnostic) {
	if len(candidates) == 0 {
		// No sector overlaps the catalog span at all; quiet zero-match.
		return nil, nil
	}

	hits, err := e.src.Sectors(ctx, f.RA, f.Dec, candidates)
	if err != nil {
		lerr := &CoverageLookupError{FlareIndex: idx, Err: err}
		return nil, []Diagnostic{{
			FlareIndex: idx, FlareID: f.ID,
			Reason: ReasonNoCoverage, Detail: lerr.Error(),
		}}
	}
	if len(hits) == 0 {
		return nil, []Diagnostic{{
			FlareIndex: idx, FlareID: f.ID,
			Reason: ReasonNoCoverage,
		}}
	}

	var (
		matched []int
		diags   []Diagnostic
		seen    map[int]struct{}
	)
	if e.cfg.Dedupe {
		seen = make(map[int]struct{}, len(hits))
	}
	for _, id := range hits {
		w, ok := e.tab.Lookup(id)
		if !ok {
			cerr := &ConsistencyError{SectorID: id}
			diags = append(diags, Diagnostic{
				FlareIndex: idx, FlareID: f.ID, SectorID: id,
				Reason: ReasonUnknownSector, Detail: cerr.Error(),
			})
			continue
		}
		if !w.Contains(f.MJD) {
			diags = append(diags, Diagnostic{
				FlareIndex: idx, FlareID: f.ID, SectorID: id,
				Reason: ReasonNoTimeOverlap,
			})
			continue
		}
		if seen != nil {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
		}
		matched = append(matched, id)
	}
	return matched, diags
}

// Run matches every flare serially and returns a fresh copy of the catalog
// with Matched populated, plus all diagnostics. The input slice is not
// mutated, so reruns start from a clean state.
func (e *Engine) Run(ctx context.Context, flares []catalog.FlareRecord) ([]catalog.FlareRecord, []Diagnostic, error) {
	out := make([]catalog.FlareRecord, len(flares))
	copy(out, flares)

	candidates := e.Candidates(flares)
	var diags []Diagnostic
	for i := range out {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		matched, d := e.MatchOne(ctx, i, out[i], candidates)
		out[i].Matched = matched
		diags = append(diags, d...)
	}
	return out, diags, nil
}
