package alpha

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/meltforce/strain/internal/storage"
	"github.com/meltforce/strain/internal/workout"
)

func newTestLoop(t *testing.T) *workout.Loop {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := workout.New(storage.NewStateStore(storage.NewMemory(), "", log), log)
	if err := e.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}
	l := workout.NewLoop(e)
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	t.Cleanup(cancel)
	return l
}

// TestIngestIsIdempotent verifies a second import of the same export inserts nothing.
func TestIngestIsIdempotent(t *testing.T) {
	ctx := context.Background()
	l := newTestLoop(t)
	p := NewProvider(l, slog.New(slog.NewTextHandler(io.Discard, nil)))

	res, err := p.Ingest(ctx, strings.NewReader(sampleCSV), false)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if res.SessionsReceived != 2 || res.SessionsInserted != 2 || res.SessionsSkipped != 0 {
		t.Errorf("first result = %+v", res)
	}

	res, err = p.Ingest(ctx, strings.NewReader(sampleCSV), false)
	if err != nil {
		t.Fatalf("re-ingest: %v", err)
	}
	if res.SessionsInserted != 0 || res.SessionsSkipped != 2 {
		t.Errorf("second result = %+v", res)
	}

	st, err := l.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.History) != 2 {
		t.Fatalf("history = %d entries, want 2", len(st.History))
	}
	if st.History[0].Date != "2026-02-19" || st.History[1].Date != "2026-02-17" {
		t.Errorf("history order = %s, %s; want newest first", st.History[0].Date, st.History[1].Date)
	}
}

// TestIngestDryRun verifies a dry run reports counts without touching history.
func TestIngestDryRun(t *testing.T) {
	ctx := context.Background()
	l := newTestLoop(t)
	p := NewProvider(l, slog.New(slog.NewTextHandler(io.Discard, nil)))

	res, err := p.Ingest(ctx, strings.NewReader(sampleCSV), true)
	if err != nil {
		t.Fatal(err)
	}
	if !res.DryRun || res.SessionsInserted != 0 || res.SetsReceived != 28 {
		t.Errorf("result = %+v", res)
	}
	st, _ := l.Snapshot(ctx)
	if len(st.History) != 0 {
		t.Errorf("history = %d entries, want 0", len(st.History))
	}
}

// TestIngestRejectsMalformed verifies parse failures surface as errors.
func TestIngestRejectsMalformed(t *testing.T) {
	l := newTestLoop(t)
	p := NewProvider(l, slog.New(slog.NewTextHandler(io.Discard, nil)))

	csv := "\"1. Squat · Barbell · 5 reps\"\n1;100;5;1\n"
	if _, err := p.Ingest(context.Background(), strings.NewReader(csv), false); err == nil {
		t.Fatal("expected error for exercise without session")
	}
}

// TestIngestNonFiniteWeightKeepsStateSavable verifies an export with an "inf"
// weight imports nothing and a later valid import still saves.
func TestIngestNonFiniteWeightKeepsStateSavable(t *testing.T) {
	ctx := context.Background()
	l := newTestLoop(t)
	p := NewProvider(l, slog.New(slog.NewTextHandler(io.Discard, nil)))

	csv := "\"Push\";\"2026-02-19 4:54 h\";\"1:00 hr\"\n" +
		"\"1. Bench Press · Barbell · 8 reps\"\n" +
		"#;KG;REPS;RIR\n" +
		"1;inf;8;1\n"
	res, err := p.Ingest(ctx, strings.NewReader(csv), false)
	if err != nil {
		t.Fatalf("import error: %v", err)
	}
	if res.SessionsInserted != 0 || res.SetsDropped != 1 {
		t.Errorf("inserted = %d, sets dropped = %d; want 0, 1", res.SessionsInserted, res.SetsDropped)
	}

	res, err = p.Ingest(ctx, strings.NewReader(sampleCSV), false)
	if err != nil {
		t.Fatalf("follow-up import error: %v", err)
	}
	if res.SessionsInserted != 2 {
		t.Errorf("follow-up inserted = %d, want 2", res.SessionsInserted)
	}
}
