// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"tesscross/internal/app"
	"tesscross/internal/sectorsapp"
)

const scheduleCSV = "Sector,Start of Orbit,End of Orbit\n" +
	"1,58325.0,58338.5\n" +
	"1,58339.5,58352.0\n" +
	"2,58354.0,58381.0\n"

const flaresCSV = "id,ra,dec,mjd\n" +
	"F1,120.5,-30.25,58330.0\n" +
	"F2,80.0,10.0,58360.0\n" +
	"F3,200.0,45.0,58353.0\n"

func write(t *testing.T, fn, data string) string {
	t.Helper()
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

// coverageServer answers the sector endpoint per queried RA the way the
// live service would: one result row per sector/camera/CCD.
func coverageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sector" {
			http.NotFound(w, r)
			return
		}
		var body string
		switch r.URL.Query().Get("ra") {
		case "120.5":
			body = `{"results":[
				{"sectorName":"tess-s0001-1-3","sector":"0001","camera":"1","ccd":"3"},
				{"sectorName":"tess-s0001-2-3","sector":"0001","camera":"2","ccd":"3"},
				{"sectorName":"tess-s0002-1-1","sector":"0002","camera":"1","ccd":"1"}]}`
		case "200":
			body = `{"results":[{"sectorName":"tess-s0002-4-2","sector":"0002","camera":"4","ccd":"2"}]}`
		default:
			body = `{"results":[]}`
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEndToEnd(t *testing.T) {
	srv := coverageServer(t)
	sched := write(t, "itest_orbits.csv", scheduleCSV)
	defer os.Remove(sched)
	fl := write(t, "itest_flares.csv", flaresCSV)
	defer os.Remove(fl)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"--sectors", sched,
		"--coverage-url", srv.URL,
		fl,
	}, &out, &errBuf)

	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	got := out.String()
	if !strings.Contains(got, "F1") {
		t.Fatalf("expected F1 in output:\n%s", got)
	}
	// Camera rows for the same sector stay duplicated.
	if !strings.Contains(got, "1,1") {
		t.Fatalf("expected duplicated sector list 1,1:\n%s", got)
	}
	// F2 has no coverage and F3 only a boundary touch; neither matches.
	if strings.Contains(got, "F2") || strings.Contains(got, "F3") {
		t.Fatalf("unexpected unmatched flare in output:\n%s", got)
	}
}

func TestDedupeCollapsesCameraRows(t *testing.T) {
	srv := coverageServer(t)
	sched := write(t, "dd_orbits.csv", scheduleCSV)
	defer os.Remove(sched)
	fl := write(t, "dd_flares.csv", flaresCSV)
	defer os.Remove(fl)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"--sectors", sched,
		"--coverage-url", srv.URL,
		"--dedupe",
		fl,
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	if strings.Contains(out.String(), "1,1") {
		t.Fatalf("--dedupe left duplicate sector IDs:\n%s", out.String())
	}
}

func TestNoMatchesExitCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()
	sched := write(t, "nm_orbits.csv", scheduleCSV)
	defer os.Remove(sched)
	fl := write(t, "nm_flares.csv", flaresCSV)
	defer os.Remove(fl)

	run := func(extra ...string) int {
		argv := append([]string{"--sectors", sched, "--coverage-url", srv.URL, fl}, extra...)
		var out, errBuf bytes.Buffer
		return app.Run(argv, &out, &errBuf)
	}

	if code := run(); code != 1 {
		t.Fatalf("expected exit 1 on no matches, got %d", code)
	}
	if code := run("--no-match-exit-code", "0"); code != 0 {
		t.Fatalf("expected exit 0 with --no-match-exit-code 0, got %d", code)
	}
}

func TestOfflineCoverageFile(t *testing.T) {
	sched := write(t, "off_orbits.csv", scheduleCSV)
	defer os.Remove(sched)
	fl := write(t, "off_flares.csv", flaresCSV)
	defer os.Remove(fl)
	snap := write(t, "off_snapshot.csv",
		"ra,dec,sectors\n120.5,-30.25,1;1;2\n80.0,10.0,\n")
	defer os.Remove(snap)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"--sectors", sched,
		"--coverage-file", snap,
		fl,
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "1,1") {
		t.Fatalf("expected snapshot-backed match for F1:\n%s", out.String())
	}
}

func TestNamesFileLabelsUnnamedFlares(t *testing.T) {
	srv := coverageServer(t)
	sched := write(t, "nt_orbits.csv", scheduleCSV)
	defer os.Remove(sched)
	fl := write(t, "nt_flares.csv", "ra,dec,mjd\n120.5,-30.25,58330.0\n")
	defer os.Remove(fl)
	nt := write(t, "nt_names.csv", "ra,dec,id\n120.5,-30.25,TIC 733717\n")
	defer os.Remove(nt)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"--sectors", sched,
		"--coverage-url", srv.URL,
		"--names", nt,
		fl,
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "TIC 733717") {
		t.Fatalf("resolved identifier missing from output:\n%s", out.String())
	}
}

func TestParallelMatchesEqualSerial(t *testing.T) {
	srv := coverageServer(t)
	sched := write(t, "par_orbits.csv", scheduleCSV)
	defer os.Remove(sched)
	fl := write(t, "par_flares.csv", flaresCSV)
	defer os.Remove(fl)

	run := func(threads int) string {
		var out, errBuf bytes.Buffer
		code := app.Run([]string{
			"--sectors", sched,
			"--coverage-url", srv.URL,
			"--threads", fmt.Sprint(threads),
			"--output", "jsonl",
			fl,
		}, &out, &errBuf)
		if code != 0 {
			t.Fatalf("exit %d err %s", code, errBuf.String())
		}
		return out.String()
	}

	serial := run(1)
	parallel := run(4)
	if serial != parallel {
		t.Fatalf("parallel output differs from serial\nserial: %s\nparallel:%s", serial, parallel)
	}
}

func TestUsageErrorsExit2(t *testing.T) {
	fl := write(t, "use_flares.csv", flaresCSV)
	defer os.Remove(fl)

	var out, errBuf bytes.Buffer
	if code := app.Run([]string{fl}, &out, &errBuf); code != 2 {
		t.Fatalf("missing --sectors: expected exit 2, got %d", code)
	}
	if !strings.Contains(errBuf.String(), "--sectors") {
		t.Fatalf("expected --sectors mention in error: %s", errBuf.String())
	}
}

func TestMalformedCatalogExit2(t *testing.T) {
	srv := coverageServer(t)
	sched := write(t, "bad_orbits.csv", scheduleCSV)
	defer os.Remove(sched)
	fl := write(t, "bad_flares.csv", "id,ra,dec,mjd\nF1,120.5,-30.25,not-a-time\n")
	defer os.Remove(fl)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--sectors", sched, "--coverage-url", srv.URL, fl}, &out, &errBuf)
	if code != 2 {
		t.Fatalf("expected exit 2 on malformed catalog, got %d", code)
	}
	if !strings.Contains(errBuf.String(), ":2:") {
		t.Fatalf("expected line number in error: %s", errBuf.String())
	}
}

func TestSectorsCommand(t *testing.T) {
	sched := write(t, "sc_orbits.csv", scheduleCSV)
	defer os.Remove(sched)

	var out, errBuf bytes.Buffer
	code := sectorsapp.Run([]string{"--sectors", sched}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("sectors run exit %d, err=%s", code, errBuf.String())
	}
	got := out.String()
	if !strings.Contains(got, "58325") || !strings.Contains(got, "58381") {
		t.Fatalf("expected aggregated window bounds in output:\n%s", got)
	}
}
// ===
