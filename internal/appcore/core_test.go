package appcore

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tesscross-core/catalog"
	"tesscross-core/match"
	"tesscross-core/sector"
	"tesscross/pkg/api"
)

type cannedSource struct {
	hits map[float64][]int // keyed by RA
}

func (s *cannedSource) Sectors(_ context.Context, ra, _ float64, _ sector.Set) ([]int, error) {
	return s.hits[ra], nil
}

func testTable() *sector.Table {
	return sector.NewTable([]sector.Window{
		{ID: 1, Start: 100, End: 110},
		{ID: 2, Start: 108, End: 120},
	})
}

func TestRunTextOutput(t *testing.T) {
	flares := []catalog.FlareRecord{
		{ID: "hit", RA: 1, Dec: 0, MJD: 109},
		{ID: "miss", RA: 2, Dec: 0, MJD: 115},
	}
	src := &cannedSource{hits: map[float64][]int{1: {1, 2}}}

	var out, errBuf bytes.Buffer
	code := Run(context.Background(), &out, &errBuf, Options{
		Output: "text", Header: true, Threads: 1, RunID: "t",
	}, flares, testTable(), src)

	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}
	s := out.String()
	if !strings.Contains(s, "hit\t") || strings.Contains(s, "miss\t") {
		t.Fatalf("output:\n%s", s)
	}
	if !strings.Contains(s, "1,2") {
		t.Fatalf("matched sectors missing:\n%s", s)
	}
}

func TestRunNoMatchExitCode(t *testing.T) {
	flares := []catalog.FlareRecord{{ID: "a", RA: 5, MJD: 109}}
	src := &cannedSource{hits: map[float64][]int{}}

	var out, errBuf bytes.Buffer
	code := Run(context.Background(), &out, &errBuf, Options{
		Output: "text", Threads: 1, NoMatchExitCode: 4, RunID: "t",
	}, flares, testTable(), src)

	if code != 4 {
		t.Fatalf("exit %d, want 4", code)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errBuf bytes.Buffer
	code := Run(ctx, &out, &errBuf, Options{Output: "text", Threads: 1},
		[]catalog.FlareRecord{{MJD: 109}}, testTable(), &cannedSource{})
	if code != 130 {
		t.Fatalf("exit %d, want 130", code)
	}
}

func TestRunWritesDiagFile(t *testing.T) {
	diagPath := filepath.Join(t.TempDir(), "diag.jsonl")
	flares := []catalog.FlareRecord{{ID: "a", RA: 5, MJD: 109}}
	src := &cannedSource{hits: map[float64][]int{}} // no coverage anywhere

	var out, errBuf bytes.Buffer
	code := Run(context.Background(), &out, &errBuf, Options{
		Output: "text", Threads: 1, DiagFile: diagPath, NoMatchExitCode: 1, RunID: "run-9",
	}, flares, testTable(), src)
	if code != 1 {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}

	data, err := os.ReadFile(diagPath)
	if err != nil {
		t.Fatalf("diag file: %v", err)
	}
	var d api.DiagnosticV1
	if err := json.Unmarshal(bytes.TrimSpace(data), &d); err != nil {
		t.Fatalf("diag parse: %v (%q)", err, data)
	}
	if d.Reason != match.ReasonNoCoverage || d.RunID != "run-9" {
		t.Fatalf("diag %+v", d)
	}
}

func TestRunUnknownFormat(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := Run(context.Background(), &out, &errBuf, Options{Output: "parquet", Threads: 1},
		[]catalog.FlareRecord{{MJD: 109}}, testTable(), &cannedSource{hits: map[float64][]int{}})
	if code != 3 {
		t.Fatalf("exit %d, want 3", code)
	}
	if !strings.Contains(errBuf.String(), "unsupported output") {
		t.Fatalf("stderr: %s", errBuf.String())
	}
}
