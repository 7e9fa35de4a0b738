package sectorscli

import (
	"flag"
	"testing"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func TestPositionalSchedule(t *testing.T) {
	o, err := ParseArgs(newFS(), []string{"orbits.csv"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.SectorFile != "orbits.csv" {
		t.Fatalf("got %+v", o)
	}
}

func TestFlagSchedule(t *testing.T) {
	o, err := ParseArgs(newFS(), []string{"-s", "orbits.csv", "-o", "csv"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.SectorFile != "orbits.csv" || o.Output != "csv" {
		t.Fatalf("got %+v", o)
	}
}

func TestRejectsJSONL(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"orbits.csv", "-o", "jsonl"}); err == nil {
		t.Fatal("expected jsonl rejection")
	}
}

func TestRejectsTwoPositionals(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"a.csv", "b.csv"}); err == nil {
		t.Fatal("expected error for two schedules")
	}
}

func TestMissingSchedule(t *testing.T) {
	if _, err := ParseArgs(newFS(), nil); err == nil {
		t.Fatal("expected error for missing schedule")
	}
}
