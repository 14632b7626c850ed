package workout

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/meltforce/strain/internal/models"
)

// knownExercise reports whether name matches an exercise on any day.
func (e *Engine) knownExercise(name string) bool {
	return slices.Contains(AllExerciseNames(e.st.Days), name)
}

// TrackExercise starts tracking a best lift for an exercise name, starting
// from zero.
func (e *Engine) TrackExercise(ctx context.Context, name string) (models.BestLift, error) {
	name = strings.TrimSpace(name)
	if len(e.st.BestLifts) >= models.MaxBestLifts {
		return models.BestLift{}, fmt.Errorf("already tracking %d exercises: %w", models.MaxBestLifts, ErrCapacity)
	}
	if _, ok := e.st.FindBestLift(name); ok {
		return models.BestLift{}, fmt.Errorf("exercise %q: %w", name, ErrDuplicate)
	}
	if !e.knownExercise(name) {
		return models.BestLift{}, fmt.Errorf("exercise %q: %w", name, ErrUnknownExercise)
	}

	lift := models.BestLift{ID: e.newID(), Exercise: name}
	e.st.BestLifts = append(e.st.BestLifts, lift)
	return lift, e.persist(ctx, "track exercise")
}

// RetrackLift points an existing slot at another exercise. The recorded
// weight and reps are reset to zero even when the name is unchanged.
func (e *Engine) RetrackLift(ctx context.Context, liftID, name string) (models.BestLift, error) {
	name = strings.TrimSpace(name)
	i := slices.IndexFunc(e.st.BestLifts, func(l models.BestLift) bool { return l.ID == liftID })
	if i < 0 {
		return models.BestLift{}, fmt.Errorf("best lift %s: %w", liftID, ErrNotFound)
	}
	if !e.knownExercise(name) {
		return models.BestLift{}, fmt.Errorf("exercise %q: %w", name, ErrUnknownExercise)
	}
	if other, ok := e.st.FindBestLift(name); ok && other.ID != liftID {
		return models.BestLift{}, fmt.Errorf("exercise %q: %w", name, ErrDuplicate)
	}

	e.st.BestLifts[i] = models.BestLift{ID: liftID, Exercise: name}
	return e.st.BestLifts[i], e.persist(ctx, "retrack lift")
}

// UntrackLift removes a best-lift slot.
func (e *Engine) UntrackLift(ctx context.Context, liftID string) error {
	i := slices.IndexFunc(e.st.BestLifts, func(l models.BestLift) bool { return l.ID == liftID })
	if i < 0 {
		return fmt.Errorf("best lift %s: %w", liftID, ErrNotFound)
	}
	e.st.BestLifts = slices.Delete(e.st.BestLifts, i, i+1)
	return e.persist(ctx, "untrack lift")
}
