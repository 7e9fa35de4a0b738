package catalog

import (
	"context"
	"errors"
	"testing"
)

type mapResolver struct {
	ids  map[float64]string // keyed by RA for brevity
	err  error
	asks int
}

func (m *mapResolver) Resolve(_ context.Context, ra, _ float64) (string, bool, error) {
	m.asks++
	if m.err != nil {
		return "", false, m.err
	}
	id, ok := m.ids[ra]
	return id, ok, nil
}

func TestAssignIDsFillsOnlyMissing(t *testing.T) {
	recs := []FlareRecord{
		{ID: "named", RA: 1},
		{RA: 2},
		{RA: 3}, // unknown position
	}
	r := &mapResolver{ids: map[float64]string{2: "TIC 12345"}}

	if err := AssignIDs(context.Background(), recs, r); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if recs[0].ID != "named" {
		t.Errorf("existing ID overwritten: %q", recs[0].ID)
	}
	if recs[1].ID != "TIC 12345" {
		t.Errorf("missing ID not filled: %q", recs[1].ID)
	}
	if recs[2].ID != "" {
		t.Errorf("not-found position must stay unnamed: %q", recs[2].ID)
	}
	if r.asks != 2 {
		t.Errorf("resolver asked %d times, want 2", r.asks)
	}
}

func TestAssignIDsResolverFailureAborts(t *testing.T) {
	recs := []FlareRecord{{RA: 2}}
	r := &mapResolver{err: errors.New("service down")}
	if err := AssignIDs(context.Background(), recs, r); err == nil {
		t.Fatal("expected resolver error to propagate")
	}
}

func TestAssignIDsHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	recs := []FlareRecord{{RA: 2}}
	err := AssignIDs(ctx, recs, &mapResolver{ids: map[float64]string{2: "x"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
