package coverage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"tesscross-core/catalog"
	"tesscross-core/sector"
)

// PositionTolerance is the maximum per-axis distance, in degrees, between
// a queried position and a snapshot row for the row to answer the query.
const PositionTolerance = 1e-3

type fileEntry struct {
	ra, dec float64
	hits    []int
}

// FileSource serves coverage lookups from a CSV snapshot with columns
// ra, dec, sectors (semicolon-separated IDs, repeats preserved). It lets
// a batch run without network access; a position with no matching row is
// an empty result, mirroring the live service.
type FileSource struct {
	entries []fileEntry
}

// LoadFile reads a coverage snapshot from path.
func LoadFile(path string) (*FileSource, error) {
	rc, err := catalog.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	fs, err := ReadFile(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fs, nil
}

// ReadFile parses a coverage snapshot from r. See LoadFile.
func ReadFile(r io.Reader) (*FileSource, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty coverage snapshot")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	find := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}
	iRA, iDec, iSec := find("ra"), find("dec"), find("sectors")
	if iRA < 0 || iDec < 0 || iSec < 0 {
		return nil, fmt.Errorf("coverage snapshot needs ra, dec and sectors columns")
	}

	var entries []fileEntry
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		e := fileEntry{}
		if e.ra, err = strconv.ParseFloat(strings.TrimSpace(row[iRA]), 64); err != nil {
			return nil, fmt.Errorf("line %d: bad ra %q", line, row[iRA])
		}
		if e.dec, err = strconv.ParseFloat(strings.TrimSpace(row[iDec]), 64); err != nil {
			return nil, fmt.Errorf("line %d: bad dec %q", line, row[iDec])
		}
		for _, s := range strings.Split(strings.TrimSpace(row[iSec]), ";") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			id, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad sector %q", line, s)
			}
			e.hits = append(e.hits, id)
		}
		entries = append(entries, e)
	}
	return &FileSource{entries: entries}, nil
}

// Sectors implements match.CoverageSource over the snapshot.
func (f *FileSource) Sectors(_ context.Context, ra, dec float64, candidates sector.Set) ([]int, error) {
	var out []int
	for _, e := range f.entries {
		if math.Abs(e.ra-ra) > PositionTolerance || math.Abs(e.dec-dec) > PositionTolerance {
			continue
		}
		for _, id := range e.hits {
			if candidates.Has(id) {
				out = append(out, id)
			}
		}
	}
	return out, nil
}
