package workout

import (
	"context"
	"fmt"
	"strings"

	"github.com/meltforce/strain/internal/models"
)

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name is empty: %w", ErrInvalidInput)
	}
	return name, nil
}

// AddDay creates an empty training day.
func (e *Engine) AddDay(ctx context.Context, name string) (models.Day, error) {
	name, err := cleanName(name)
	if err != nil {
		return models.Day{}, err
	}
	day := models.Day{ID: e.newID(), Name: name, Exercises: []models.Exercise{}}
	e.st.Days = append(e.st.Days, day)
	return day, e.persist(ctx, "add day")
}

// RenameDay changes a day's name. Sessions and history keep the name they copied.
func (e *Engine) RenameDay(ctx context.Context, dayID, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	day, ok := e.st.FindDay(dayID)
	if !ok {
		return fmt.Errorf("day %s: %w", dayID, ErrNotFound)
	}
	day.Name = name
	return e.persist(ctx, "rename day")
}

// DeleteDay removes a day. History, best lifts, and an active session started
// from it are unaffected.
func (e *Engine) DeleteDay(ctx context.Context, dayID string) error {
	for i := range e.st.Days {
		if e.st.Days[i].ID == dayID {
			e.st.Days = append(e.st.Days[:i], e.st.Days[i+1:]...)
			return e.persist(ctx, "delete day")
		}
	}
	return fmt.Errorf("day %s: %w", dayID, ErrNotFound)
}

// AddExercise appends an exercise template to a day.
func (e *Engine) AddExercise(ctx context.Context, dayID, name string) (models.Exercise, error) {
	name, err := cleanName(name)
	if err != nil {
		return models.Exercise{}, err
	}
	day, ok := e.st.FindDay(dayID)
	if !ok {
		return models.Exercise{}, fmt.Errorf("day %s: %w", dayID, ErrNotFound)
	}
	ex := models.Exercise{ID: e.newID(), Name: name}
	day.Exercises = append(day.Exercises, ex)
	return ex, e.persist(ctx, "add exercise")
}

// RenameExercise changes an exercise template's name. Matching elsewhere is
// by exact name, so best lifts and sessions that used the old name no longer
// line up with the template afterwards.
func (e *Engine) RenameExercise(ctx context.Context, dayID, exerciseID, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	day, ok := e.st.FindDay(dayID)
	if !ok {
		return fmt.Errorf("day %s: %w", dayID, ErrNotFound)
	}
	i, ok := day.FindExercise(exerciseID)
	if !ok {
		return fmt.Errorf("exercise %s: %w", exerciseID, ErrNotFound)
	}
	old := day.Exercises[i].Name
	day.Exercises[i].Name = name
	if _, tracked := e.st.FindBestLift(old); tracked {
		e.log.Warn("renamed exercise is tracked as a best lift under its old name", "old", old, "new", name)
	}
	return e.persist(ctx, "rename exercise")
}

// RemoveExercise deletes an exercise template from a day.
func (e *Engine) RemoveExercise(ctx context.Context, dayID, exerciseID string) error {
	day, ok := e.st.FindDay(dayID)
	if !ok {
		return fmt.Errorf("day %s: %w", dayID, ErrNotFound)
	}
	i, ok := day.FindExercise(exerciseID)
	if !ok {
		return fmt.Errorf("exercise %s: %w", exerciseID, ErrNotFound)
	}
	day.Exercises = append(day.Exercises[:i], day.Exercises[i+1:]...)
	return e.persist(ctx, "remove exercise")
}
