// Package names resolves sky positions to catalog identifiers from a CSV
// cross-reference table, for catalogs that ship positions without names.
package names

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"tesscross-core/catalog"
)

// PositionTolerance is the maximum per-axis distance, in degrees, between
// a queried position and a table row for the row to name the query.
const PositionTolerance = 1e-3

type entry struct {
	ra, dec float64
	id      string
}

// Table implements catalog.IDResolver over a CSV cross-reference with
// columns ra, dec, id. A position with no matching row is not-found.
type Table struct {
	entries []entry
}

// Load reads a cross-reference table from path.
func Load(path string) (*Table, error) {
	rc, err := catalog.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	t, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses a cross-reference table from r. See Load.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty name table")
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
	iRA, iDec, iID := find("ra"), find("dec"), find("id")
	if iRA < 0 || iDec < 0 || iID < 0 {
		return nil, fmt.Errorf("name table needs ra, dec and id columns")
	}

	var entries []entry
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
		e := entry{id: strings.TrimSpace(row[iID])}
		if e.ra, err = strconv.ParseFloat(strings.TrimSpace(row[iRA]), 64); err != nil {
			return nil, fmt.Errorf("line %d: bad ra %q", line, row[iRA])
		}
		if e.dec, err = strconv.ParseFloat(strings.TrimSpace(row[iDec]), 64); err != nil {
			return nil, fmt.Errorf("line %d: bad dec %q", line, row[iDec])
		}
		if e.id == "" {
			return nil, fmt.Errorf("line %d: empty id", line)
		}
		entries = append(entries, e)
	}
	return &Table{entries: entries}, nil
}

// Resolve implements catalog.IDResolver.
func (t *Table) Resolve(_ context.Context, ra, dec float64) (string, bool, error) {
	for _, e := range t.entries {
		if math.Abs(e.ra-ra) <= PositionTolerance && math.Abs(e.dec-dec) <= PositionTolerance {
			return e.id, true, nil
		}
	}
	return "", false, nil
}
