package workout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/meltforce/strain/internal/models"
)

// TestDayLifecycle walks add, add exercise, rename and remove on one day.
func TestDayLifecycle(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEngine(t, testState())

	day, err := e.AddDay(ctx, "  Pull Day ")
	if err != nil {
		t.Fatal(err)
	}
	if day.Name != "Pull Day" || len(day.Exercises) != 0 {
		t.Errorf("day = %+v", day)
	}

	row, err := e.AddExercise(ctx, day.ID, "Barbell Row")
	if err != nil {
		t.Fatal(err)
	}
	curl, _ := e.AddExercise(ctx, day.ID, "Curls")
	if err := e.RenameExercise(ctx, day.ID, row.ID, "Pendlay Row"); err != nil {
		t.Fatal(err)
	}
	if err := e.RenameDay(ctx, day.ID, "Back"); err != nil {
		t.Fatal(err)
	}
	if err := e.RemoveExercise(ctx, day.ID, curl.ID); err != nil {
		t.Fatal(err)
	}

	got, ok := e.Snapshot().FindDay(day.ID)
	if !ok {
		t.Fatal("day missing")
	}
	want := models.Day{ID: day.ID, Name: "Back", Exercises: []models.Exercise{{ID: row.ID, Name: "Pendlay Row"}}}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("day mismatch (-want +got):\n%s", diff)
	}
	if store.saves != 6 {
		t.Errorf("saves = %d, want 6", store.saves)
	}

	if err := e.DeleteDay(ctx, day.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.Snapshot().FindDay(day.ID); ok {
		t.Error("day still present after delete")
	}
}

// TestDayErrors checks blank names and unknown ids.
func TestDayErrors(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEngine(t, testState())

	if _, err := e.AddDay(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("AddDay blank err = %v", err)
	}
	if err := e.RenameDay(ctx, "nope", "X"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RenameDay err = %v", err)
	}
	if err := e.RenameDay(ctx, "push", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("RenameDay blank err = %v", err)
	}
	if err := e.DeleteDay(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteDay err = %v", err)
	}
	if _, err := e.AddExercise(ctx, "nope", "Curls"); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddExercise err = %v", err)
	}
	if err := e.RenameExercise(ctx, "push", "nope", "X"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RenameExercise err = %v", err)
	}
	if err := e.RemoveExercise(ctx, "push", "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveExercise err = %v", err)
	}
	if store.saves != 0 {
		t.Errorf("saves = %d, want 0", store.saves)
	}
}

// TestDeleteDayKeepsHistoryAndLifts verifies deleting a day leaves history,
// best lifts and the active session alone.
func TestDeleteDayKeepsHistoryAndLifts(t *testing.T) {
	ctx := context.Background()
	st := testState()
	st.BestLifts = []models.BestLift{{ID: "b1", Exercise: "Squat", Weight: 140, Reps: 5}}
	st.History = []models.HistoryEntry{{ID: "h1", Date: "2026-03-01", DayID: "legs", DayName: "Legs",
		Exercises: []models.SessionExercise{{Name: "Squat", Sets: []models.Set{{Weight: 140, Reps: 5}}}}, Volume: 700}}
	e, _ := newTestEngine(t, st)
	e.Start(ctx, "legs")

	if err := e.DeleteDay(ctx, "legs"); err != nil {
		t.Fatal(err)
	}
	after := e.Snapshot()
	if len(after.History) != 1 || len(after.BestLifts) != 1 || after.CurrentWorkout == nil {
		t.Errorf("state after delete = %+v", after)
	}
	if _, err := e.LogSet(ctx, 145, 3); err != nil {
		t.Errorf("logging into session of deleted day: %v", err)
	}
}

// TestRenameTrackedExerciseOrphansLift verifies a tracked lift keeps the old
// name and stops matching logged sets of the renamed exercise.
func TestRenameTrackedExerciseOrphansLift(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, testState())
	e.TrackExercise(ctx, "Squat")

	if err := e.RenameExercise(ctx, "legs", "sq", "Back Squat"); err != nil {
		t.Fatal(err)
	}
	e.Start(ctx, "legs")
	res, _ := e.LogSet(ctx, 100, 5)
	if res.BestLiftImproved {
		t.Error("renamed exercise updated the old lift")
	}
	if lifts := e.Snapshot().BestLifts; lifts[0].Exercise != "Squat" || lifts[0].Weight != 0 {
		t.Errorf("lift = %+v", lifts[0])
	}
}

// TestProfileSettings checks theme validation and profile name.
func TestProfileSettings(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, testState())

	if err := e.SetTheme(ctx, models.ThemeLight); err != nil {
		t.Fatal(err)
	}
	if err := e.SetTheme(ctx, "neon"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("invalid theme err = %v", err)
	}
	if err := e.SetProfileName(ctx, " Sam "); err != nil {
		t.Fatal(err)
	}

	p := e.Snapshot().Profile
	if p != (models.Profile{Name: "Sam", Theme: models.ThemeLight}) {
		t.Errorf("profile = %+v", p)
	}
}

// TestReset verifies everything returns to the first-run defaults.
func TestReset(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEngine(t, testState())
	e.Start(ctx, "push")
	e.SetTheme(ctx, models.ThemeLight)

	if err := e.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	st := e.Snapshot()
	if len(st.Days) != 1 || st.Days[0].Name != "Push Day" || st.CurrentWorkout != nil || st.Profile.Theme != models.ThemeDark {
		t.Errorf("state after reset = %+v", st)
	}
	if store.resets != 1 {
		t.Errorf("resets = %d, want 1", store.resets)
	}
	if store.saved == nil || len(store.saved.Days) != 1 {
		t.Error("defaults not saved after reset")
	}
}
