package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"tesscross-core/sector"
)

// WindowsTSVHeader is the header row for the schedule-inspection tool.
const WindowsTSVHeader = "sector\tstart_mjd\tend_mjd\torbits"

// WriteWindowsTSV writes aggregated sector windows as TSV.
func WriteWindowsTSV(w io.Writer, list []sector.Window, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, WindowsTSVHeader); err != nil {
			return err
		}
	}
	for _, win := range list {
		if _, err := fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%d\n", win.ID, win.Start, win.End, win.Orbits); err != nil {
			return err
		}
	}
	return nil
}

// WriteWindowsCSV writes aggregated sector windows as CSV.
func WriteWindowsCSV(w io.Writer, list []sector.Window, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write([]string{"sector", "start_mjd", "end_mjd", "orbits"}); err != nil {
			return err
		}
	}
	for _, win := range list {
		row := []string{
			strconv.Itoa(win.ID),
			strconv.FormatFloat(win.Start, 'f', 6, 64),
			strconv.FormatFloat(win.End, 'f', 6, 64),
			strconv.Itoa(win.Orbits),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// windowV1 is the JSON shape for one aggregated sector window.
type windowV1 struct {
	Sector   int     `json:"sector"`
	StartMJD float64 `json:"start_mjd"`
	EndMJD   float64 `json:"end_mjd"`
	Orbits   int     `json:"orbits"`
}

// WriteWindowsJSON writes aggregated sector windows as a JSON array.
func WriteWindowsJSON(w io.Writer, list []sector.Window) error {
	out := make([]windowV1, 0, len(list))
	for _, win := range list {
		out = append(out, windowV1{Sector: win.ID, StartMJD: win.Start, EndMJD: win.End, Orbits: win.Orbits})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
