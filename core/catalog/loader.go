package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tesscross-core/mjd"
)

// Column aliases observed across catalog versions, matched case-insensitively
// after trimming. The first present alias wins.
var (
	idAliases   = []string{"id", "flare_id", "source_id", "name"}
	raAliases   = []string{"ra", "source_ra", "ra_deg"}
	decAliases  = []string{"dec", "source_dec", "dec_deg"}
	timeAliases = []string{"mjd", "start_time", "time", "t_start"}
)

type columns struct {
	id, ra, dec, time int // -1 when absent
}

func findColumn(header []string, aliases []string) int {
	for _, a := range aliases {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), a) {
				return i
			}
		}
	}
	return -1
}

// Load reads a flare catalog from path and returns records sorted
// ascending by timestamp. Required columns: RA, Dec and a timestamp
// (either numeric MJD or ISO-8601); the identifier column is optional.
func Load(path string) ([]FlareRecord, error) {
	rc, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	recs, err := Read(rc)
	if err != nil {
		if me, ok := err.(*MalformedInputError); ok {
			me.Path = path
		}
		return nil, err
	}
	return recs, nil
}

// Read parses a flare catalog from r. See Load.
func Read(r io.Reader) ([]FlareRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &MalformedInputError{Msg: "empty catalog"}
	}
	if err != nil {
		return nil, &MalformedInputError{Msg: fmt.Sprintf("reading header: %v", err)}
	}

	cols := columns{
		id:   findColumn(header, idAliases),
		ra:   findColumn(header, raAliases),
		dec:  findColumn(header, decAliases),
		time: findColumn(header, timeAliases),
	}
	switch {
	case cols.ra < 0:
		return nil, &MalformedInputError{Msg: "missing right-ascension column"}
	case cols.dec < 0:
		return nil, &MalformedInputError{Msg: "missing declination column"}
	case cols.time < 0:
		return nil, &MalformedInputError{Msg: "missing timestamp column"}
	}

	var recs []FlareRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &MalformedInputError{Line: line, Msg: err.Error()}
		}
		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, &MalformedInputError{Line: line, Msg: err.Error()}
		}
		recs = append(recs, rec)
	}

	SortByTime(recs)
	return recs, nil
}

func parseRow(row []string, cols columns) (FlareRecord, error) {
	var rec FlareRecord
	get := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var err error
	if rec.RA, err = strconv.ParseFloat(get(cols.ra), 64); err != nil {
		return rec, fmt.Errorf("bad RA %q", get(cols.ra))
	}
	if rec.Dec, err = strconv.ParseFloat(get(cols.dec), 64); err != nil {
		return rec, fmt.Errorf("bad Dec %q", get(cols.dec))
	}
	if rec.MJD, err = mjd.Parse(get(cols.time)); err != nil {
		return rec, fmt.Errorf("bad timestamp: %v", err)
	}
	rec.ID = get(cols.id)
	return rec, nil
}
