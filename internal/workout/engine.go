// Package workout owns the workout state machine: starting a session from a
// day, logging and undoing sets, advancing through exercises, and completing
// the session into history. Every mutating operation validates first, then
// commits to the in-memory state, then saves the whole state.
//
// An Engine is not safe for concurrent use; run it behind a Loop.
package workout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/strain/internal/models"
)

// Store persists the whole state document. *storage.StateStore satisfies it.
type Store interface {
	Load(ctx context.Context) (*models.State, bool)
	Save(ctx context.Context, st *models.State) error
	Reset(ctx context.Context) error
}

// Engine holds the application state and applies mutations to it.
type Engine struct {
	st       *models.State
	store    Store
	log      *slog.Logger
	now      func() time.Time
	newID    func() string
	onFinish func(models.HistoryEntry)
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used to date sessions.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDs overrides id generation.
func WithIDs(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// OnFinish registers the completion notification, called once per finished
// session with the new history entry.
func OnFinish(fn func(models.HistoryEntry)) Option {
	return func(e *Engine) { e.onFinish = fn }
}

// New creates an Engine with empty state. Call Restore to load saved state
// or seed the defaults.
func New(store Store, log *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		st:    &models.State{Profile: models.Profile{Theme: models.ThemeDark}},
		store: store,
		log:   log,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(e)
	}
	e.st.Normalize()
	return e
}

// Restore loads the saved state. Without usable saved state the defaults are
// seeded and saved.
func (e *Engine) Restore(ctx context.Context) error {
	if st, ok := e.store.Load(ctx); ok {
		e.st = st
		e.log.Info("state restored",
			"days", len(st.Days),
			"history", len(st.History),
			"active_workout", st.CurrentWorkout != nil,
		)
		return nil
	}
	e.st = e.defaultState()
	e.log.Info("no saved state, seeding defaults")
	return e.persist(ctx, "seed defaults")
}

// defaultState is the first-run state: one push day, dark theme.
func (e *Engine) defaultState() *models.State {
	st := &models.State{
		Days: []models.Day{{
			ID:   e.newID(),
			Name: "Push Day",
			Exercises: []models.Exercise{
				{ID: e.newID(), Name: "Bench Press"},
				{ID: e.newID(), Name: "Overhead Press"},
			},
		}},
		Profile: models.Profile{Theme: models.ThemeDark},
	}
	st.Normalize()
	return st
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() *models.State {
	return e.st.Clone()
}

func (e *Engine) persist(ctx context.Context, op string) error {
	if err := e.store.Save(ctx, e.st); err != nil {
		e.log.Error("failed to save state", "op", op, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Start begins a session for the given day, snapshotting its name and
// exercise names. Any active session is discarded without confirmation.
func (e *Engine) Start(ctx context.Context, dayID string) (*models.Session, error) {
	day, ok := e.st.FindDay(dayID)
	if !ok {
		return nil, fmt.Errorf("day %s: %w", dayID, ErrNotFound)
	}
	if len(day.Exercises) == 0 {
		return nil, fmt.Errorf("day %q: %w", day.Name, ErrEmptyDay)
	}

	s := &models.Session{
		ID:        e.newID(),
		Date:      e.now().Format(models.DateLayout),
		DayID:     day.ID,
		DayName:   day.Name,
		Exercises: make([]models.SessionExercise, len(day.Exercises)),
	}
	for i, ex := range day.Exercises {
		s.Exercises[i] = models.SessionExercise{Name: ex.Name, Sets: []models.Set{}}
	}

	if prev := e.st.CurrentWorkout; prev != nil {
		e.log.Info("discarding active workout", "workout_id", prev.ID, "day", prev.DayName)
	}
	e.st.CurrentWorkout = s
	e.log.Info("workout started", "workout_id", s.ID, "day", s.DayName, "exercises", len(s.Exercises))

	out := *s
	out.Exercises = models.CloneExercises(s.Exercises)
	return &out, e.persist(ctx, "start workout")
}

// LogResult describes a logged set.
type LogResult struct {
	Exercise         string     `json:"exercise"`
	SetNumber        int        `json:"setNumber"`
	Set              models.Set `json:"set"`
	BestLiftImproved bool       `json:"bestLiftImproved"`
}

// LogSet appends a set to the current exercise and raises its best lift if
// the set beats it.
func (e *Engine) LogSet(ctx context.Context, weight float64, reps int) (LogResult, error) {
	cur := e.st.CurrentWorkout.Current()
	if cur == nil {
		return LogResult{}, fmt.Errorf("active workout: %w", ErrNotFound)
	}
	set := models.Set{Weight: weight, Reps: reps}
	if !set.Valid() {
		return LogResult{}, fmt.Errorf("weight and reps must be positive, got %gx%d: %w", weight, reps, ErrInvalidInput)
	}

	cur.Sets = append(cur.Sets, set)
	res := LogResult{
		Exercise:         cur.Name,
		SetNumber:        len(cur.Sets),
		Set:              set,
		BestLiftImproved: UpdateBestLift(e.st.BestLifts, cur.Name, weight, reps),
	}
	if res.BestLiftImproved {
		e.log.Info("best lift improved", "exercise", cur.Name, "weight", weight, "reps", reps)
	}
	return res, e.persist(ctx, "log set")
}

// UndoLastSet removes the most recent set of the current exercise. A best
// lift raised by that set keeps its value.
func (e *Engine) UndoLastSet(ctx context.Context) (models.Set, error) {
	cur := e.st.CurrentWorkout.Current()
	if cur == nil {
		return models.Set{}, fmt.Errorf("active workout: %w", ErrNotFound)
	}
	if len(cur.Sets) == 0 {
		return models.Set{}, fmt.Errorf("exercise %q: %w", cur.Name, ErrNothingToUndo)
	}

	last := cur.Sets[len(cur.Sets)-1]
	cur.Sets = cur.Sets[:len(cur.Sets)-1]
	return last, e.persist(ctx, "undo set")
}

// Advance moves to the next exercise, or finishes the session when the
// cursor is on the last one. The returned entry is non-nil only when the
// session finished.
func (e *Engine) Advance(ctx context.Context) (*models.HistoryEntry, error) {
	w := e.st.CurrentWorkout
	if w == nil {
		return nil, fmt.Errorf("active workout: %w", ErrNotFound)
	}
	if w.IsLast() {
		return e.Finish(ctx)
	}
	w.CurrentExerciseIndex++
	return nil, e.persist(ctx, "advance")
}

// Finish completes the active session: its volume is computed, it is
// prepended to history, and the active session is cleared.
func (e *Engine) Finish(ctx context.Context) (*models.HistoryEntry, error) {
	w := e.st.CurrentWorkout
	if w == nil {
		return nil, fmt.Errorf("active workout: %w", ErrNotFound)
	}

	entry := models.HistoryEntry{
		ID:        w.ID,
		Date:      w.Date,
		DayID:     w.DayID,
		DayName:   w.DayName,
		Volume:    ComputeVolume(w.Exercises),
		Exercises: models.CloneExercises(w.Exercises),
	}
	e.st.History = append([]models.HistoryEntry{entry}, e.st.History...)
	e.st.CurrentWorkout = nil
	e.log.Info("workout finished", "workout_id", entry.ID, "day", entry.DayName, "volume", entry.Volume)

	err := e.persist(ctx, "finish workout")
	if e.onFinish != nil {
		e.onFinish(entry)
	}
	out := entry
	out.Exercises = models.CloneExercises(entry.Exercises)
	return &out, err
}

// QuickAddExercise appends an exercise to the active session only; the
// originating day is unchanged. Without an active session it does nothing.
func (e *Engine) QuickAddExercise(ctx context.Context, name string) error {
	w := e.st.CurrentWorkout
	if w == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("exercise name is empty: %w", ErrInvalidInput)
	}
	w.Exercises = append(w.Exercises, models.SessionExercise{Name: name, Sets: []models.Set{}})
	return e.persist(ctx, "quick add exercise")
}

// Suggestion is the prefill for the next set of the current exercise.
type Suggestion struct {
	Exercise  string      `json:"exercise"`
	SetNumber int         `json:"setNumber"`
	HasLast   bool        `json:"hasLast"`
	Set       *models.Set `json:"set,omitempty"`
}

// NextSuggestion looks up what was lifted for the next set number of the
// current exercise the last time it was performed.
func (e *Engine) NextSuggestion() (Suggestion, error) {
	sg, ok := SuggestNext(e.st)
	if !ok {
		return Suggestion{}, fmt.Errorf("active workout: %w", ErrNotFound)
	}
	return sg, nil
}

// SuggestNext computes the suggestion for st's active session. It reports
// false when no session is active.
func SuggestNext(st *models.State) (Suggestion, bool) {
	cur := st.CurrentWorkout.Current()
	if cur == nil {
		return Suggestion{}, false
	}
	sg := Suggestion{Exercise: cur.Name, SetNumber: len(cur.Sets) + 1}
	_, sg.HasLast = FindLatestExerciseData(st.History, cur.Name)
	if set, ok := Suggest(st.History, cur.Name, sg.SetNumber); ok {
		sg.Set = &set
	}
	return sg, true
}
