package workout

import (
	"context"
	"errors"
	"testing"

	"github.com/meltforce/strain/internal/models"
)

// TestTrackExercise verifies a new slot starts at zero.
func TestTrackExercise(t *testing.T) {
	e, store := newTestEngine(t, testState())
	lift, err := e.TrackExercise(context.Background(), "Squat")
	if err != nil {
		t.Fatal(err)
	}
	if lift.Exercise != "Squat" || lift.Weight != 0 || lift.Reps != 0 || lift.ID == "" {
		t.Errorf("lift = %+v", lift)
	}
	if store.saves != 1 || len(store.saved.BestLifts) != 1 {
		t.Errorf("saves = %d, saved lifts = %d", store.saves, len(store.saved.BestLifts))
	}
}

// TestTrackExerciseErrors checks capacity, duplicate and unknown names.
func TestTrackExerciseErrors(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, testState())
	if _, err := e.TrackExercise(ctx, "Bench Press"); err != nil {
		t.Fatal(err)
	}

	if _, err := e.TrackExercise(ctx, "Bench Press"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate err = %v, want ErrDuplicate", err)
	}
	if _, err := e.TrackExercise(ctx, "Deadlift"); !errors.Is(err, ErrUnknownExercise) {
		t.Errorf("unknown err = %v, want ErrUnknownExercise", err)
	}

	e.TrackExercise(ctx, "Squat")
	e.TrackExercise(ctx, "Dips")
	before := e.Snapshot().BestLifts

	if _, err := e.TrackExercise(ctx, "Overhead Press"); !errors.Is(err, ErrCapacity) {
		t.Errorf("fourth track err = %v, want ErrCapacity", err)
	}
	if got := e.Snapshot().BestLifts; len(got) != len(before) || len(got) != models.MaxBestLifts {
		t.Errorf("lifts = %d, want %d", len(got), models.MaxBestLifts)
	}
}

// TestLoggingRaisesTrackedLift verifies logged sets feed the record through
// the engine, and a lighter set leaves it.
func TestLoggingRaisesTrackedLift(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, testState())
	e.TrackExercise(ctx, "Squat")
	e.Start(ctx, "legs")

	e.LogSet(ctx, 100, 5)
	res, _ := e.LogSet(ctx, 100, 3)
	if res.BestLiftImproved {
		t.Error("100x3 after 100x5 reported an improvement")
	}

	lift, _ := e.Snapshot().FindBestLift("Squat")
	if lift.Weight != 100 || lift.Reps != 5 {
		t.Errorf("lift = %gx%d, want 100x5", lift.Weight, lift.Reps)
	}
}

// TestRetrackLift verifies retracking resets the record, even to the same name.
func TestRetrackLift(t *testing.T) {
	ctx := context.Background()
	st := testState()
	st.BestLifts = []models.BestLift{
		{ID: "b1", Exercise: "Bench Press", Weight: 100, Reps: 5},
		{ID: "b2", Exercise: "Squat", Weight: 140, Reps: 3},
	}
	e, _ := newTestEngine(t, st)

	lift, err := e.RetrackLift(ctx, "b1", "Dips")
	if err != nil {
		t.Fatal(err)
	}
	if lift != (models.BestLift{ID: "b1", Exercise: "Dips"}) {
		t.Errorf("lift = %+v", lift)
	}

	lift, err = e.RetrackLift(ctx, "b2", "Squat")
	if err != nil {
		t.Fatal(err)
	}
	if lift.Weight != 0 || lift.Reps != 0 {
		t.Errorf("same-name retrack kept %gx%d, want reset", lift.Weight, lift.Reps)
	}

	if _, err := e.RetrackLift(ctx, "b1", "Squat"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate err = %v, want ErrDuplicate", err)
	}
	if _, err := e.RetrackLift(ctx, "b1", "Deadlift"); !errors.Is(err, ErrUnknownExercise) {
		t.Errorf("unknown err = %v, want ErrUnknownExercise", err)
	}
	if _, err := e.RetrackLift(ctx, "missing", "Squat"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing err = %v, want ErrNotFound", err)
	}
}

// TestUntrackLift verifies a slot can be freed and reused.
func TestUntrackLift(t *testing.T) {
	ctx := context.Background()
	st := testState()
	st.BestLifts = []models.BestLift{
		{ID: "b1", Exercise: "Bench Press"},
		{ID: "b2", Exercise: "Squat"},
		{ID: "b3", Exercise: "Dips"},
	}
	e, _ := newTestEngine(t, st)

	if err := e.UntrackLift(ctx, "b2"); err != nil {
		t.Fatal(err)
	}
	lifts := e.Snapshot().BestLifts
	if len(lifts) != 2 || lifts[0].ID != "b1" || lifts[1].ID != "b3" {
		t.Errorf("lifts = %+v", lifts)
	}
	if _, err := e.TrackExercise(ctx, "Overhead Press"); err != nil {
		t.Errorf("track after untrack: %v", err)
	}
	if err := e.UntrackLift(ctx, "b2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
