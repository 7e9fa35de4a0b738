package sector

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tesscross-core/catalog"
	"tesscross-core/mjd"
)

// Orbit-schedule column headers as published in the TESS observing plan.
const (
	colSector     = "Sector"
	colOrbitStart = "Start of Orbit"
	colOrbitEnd   = "End of Orbit"
)

// Load reads the orbit-level schedule CSV at path and returns the
// aggregated per-sector table.
func Load(path string) (*Table, error) {
	rc, err := catalog.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	t, err := Read(rc)
	if err != nil {
		if me, ok := err.(*catalog.MalformedInputError); ok {
			me.Path = path
		}
		return nil, err
	}
	return t, nil
}

// Read parses an orbit-level schedule from r. Each row is one orbit;
// multiple orbits per sector are folded to min(start)/max(end).
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &catalog.MalformedInputError{Msg: "empty sector schedule"}
	}
	if err != nil {
		return nil, &catalog.MalformedInputError{Msg: fmt.Sprintf("reading header: %v", err)}
	}

	find := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}
	iSector, iStart, iEnd := find(colSector), find(colOrbitStart), find(colOrbitEnd)
	if iSector < 0 || iStart < 0 || iEnd < 0 {
		return nil, &catalog.MalformedInputError{
			Msg: fmt.Sprintf("schedule needs %q, %q and %q columns", colSector, colOrbitStart, colOrbitEnd),
		}
	}

	var orbits []Window
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &catalog.MalformedInputError{Line: line, Msg: err.Error()}
		}
		get := func(i int) string {
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		id, err := strconv.Atoi(get(iSector))
		if err != nil || id <= 0 {
			return nil, &catalog.MalformedInputError{Line: line, Msg: fmt.Sprintf("bad sector id %q", get(iSector))}
		}
		start, err := mjd.Parse(get(iStart))
		if err != nil {
			return nil, &catalog.MalformedInputError{Line: line, Msg: fmt.Sprintf("bad orbit start: %v", err)}
		}
		end, err := mjd.Parse(get(iEnd))
		if err != nil {
			return nil, &catalog.MalformedInputError{Line: line, Msg: fmt.Sprintf("bad orbit end: %v", err)}
		}
		if end < start {
			return nil, &catalog.MalformedInputError{Line: line, Msg: fmt.Sprintf("orbit end %v before start %v", end, start)}
		}
		orbits = append(orbits, Window{ID: id, Start: start, End: end})
	}

	return NewTable(orbits), nil
}
