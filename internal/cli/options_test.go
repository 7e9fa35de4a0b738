package cli

import (
	"flag"
	"testing"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestFlagsAndPositionals(t *testing.T) {
	o := mustParse(t,
		"--sectors", "orbits.csv",
		"--flares", "a.csv",
		"b.csv",
	)
	if o.SectorFile != "orbits.csv" || len(o.FlareFiles) != 2 {
		t.Errorf("bad parse %+v", o)
	}
	if o.FlareFiles[0] != "a.csv" || o.FlareFiles[1] != "b.csv" {
		t.Errorf("flare order %v", o.FlareFiles)
	}
}

func TestAliases(t *testing.T) {
	o := mustParse(t, "-s", "orbits.csv", "-f", "a.csv", "-o", "jsonl", "-t", "3")
	if o.Output != "jsonl" || o.Threads != 3 {
		t.Errorf("alias parse %+v", o)
	}
}

func TestDefaults(t *testing.T) {
	o := mustParse(t, "-s", "orbits.csv", "a.csv")
	if o.Bounds != "endpoints" || o.Dedupe || !o.Header || o.NoMatchExitCode != 1 {
		t.Errorf("defaults %+v", o)
	}
}

func TestErrorMissingSectors(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"a.csv"}); err == nil {
		t.Fatal("expected error when --sectors missing")
	}
}

func TestErrorMissingFlares(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-s", "orbits.csv"}); err == nil {
		t.Fatal("expected error when no flare catalog given")
	}
}

func TestErrorCoverageConflict(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{
		"-s", "orbits.csv", "a.csv",
		"--coverage-file", "snap.csv", "--coverage-url", "http://x",
	})
	if err == nil {
		t.Fatal("expected mutual-exclusion error")
	}
}

func TestErrorBadBounds(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-s", "o.csv", "a.csv", "--bounds", "median"}); err == nil {
		t.Fatal("expected error for bad --bounds")
	}
}

func TestErrorBadOutput(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-s", "o.csv", "a.csv", "-o", "parquet"}); err == nil {
		t.Fatal("expected error for bad --output")
	}
}

func TestErrorPrettyNeedsText(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-s", "o.csv", "a.csv", "-o", "json", "--pretty"}); err == nil {
		t.Fatal("expected error for --pretty with non-text output")
	}
}

func TestVersionSkipsValidation(t *testing.T) {
	o := mustParse(t, "--version")
	if !o.Version {
		t.Fatal("version flag lost")
	}
}
