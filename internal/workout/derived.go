package workout

import (
	"slices"
	"strings"

	"github.com/meltforce/strain/internal/models"
)

// ComputeVolume sums weight x reps over every set of every exercise.
func ComputeVolume(exercises []models.SessionExercise) float64 {
	var total float64
	for _, ex := range exercises {
		for _, s := range ex.Sets {
			total += s.Volume()
		}
	}
	return total
}

// FindLatestExerciseData scans history newest-first and returns the first
// exercise record with exactly the given name.
func FindLatestExerciseData(history []models.HistoryEntry, name string) (models.SessionExercise, bool) {
	for _, h := range history {
		for _, ex := range h.Exercises {
			if ex.Name == name {
				return ex, true
			}
		}
	}
	return models.SessionExercise{}, false
}

// Suggest returns the set performed at position setNumber (1-based) the last
// time the exercise appeared in history.
func Suggest(history []models.HistoryEntry, name string, setNumber int) (models.Set, bool) {
	latest, ok := FindLatestExerciseData(history, name)
	if !ok || setNumber < 1 || setNumber > len(latest.Sets) {
		return models.Set{}, false
	}
	return latest.Sets[setNumber-1], true
}

// UpdateBestLift raises the tracked record for name when (weight, reps) beats
// it: heavier wins outright, equal weight needs more reps. Untracked names are
// ignored. Reports whether the record changed.
func UpdateBestLift(lifts []models.BestLift, name string, weight float64, reps int) bool {
	for i := range lifts {
		l := &lifts[i]
		if l.Exercise != name {
			continue
		}
		if weight > l.Weight || (weight == l.Weight && reps > l.Reps) {
			l.Weight = weight
			l.Reps = reps
			return true
		}
		return false
	}
	return false
}

// AllExerciseNames returns the distinct exercise names across all days in
// first-seen order.
func AllExerciseNames(days []models.Day) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, d := range days {
		for _, ex := range d.Exercises {
			if seen[ex.Name] {
				continue
			}
			seen[ex.Name] = true
			names = append(names, ex.Name)
		}
	}
	return names
}

// VolumePoint is one completed workout on the progress chart.
type VolumePoint struct {
	Date    string  `json:"date"`
	DayName string  `json:"dayName"`
	Volume  float64 `json:"volume"`
}

// VolumeSeries returns history oldest-first for charting. Stored history is
// left untouched.
func VolumeSeries(history []models.HistoryEntry) []VolumePoint {
	points := make([]VolumePoint, len(history))
	for i, h := range history {
		points[i] = VolumePoint{Date: h.Date, DayName: h.DayName, Volume: h.Volume}
	}
	slices.SortStableFunc(points, func(a, b VolumePoint) int {
		return strings.Compare(a.Date, b.Date)
	})
	return points
}

// ExerciseRecord is one appearance of an exercise in history.
type ExerciseRecord struct {
	Date    string       `json:"date"`
	DayName string       `json:"dayName"`
	Sets    []models.Set `json:"sets"`
	Volume  float64      `json:"volume"`
	TopSet  models.Set   `json:"topSet"`
}

// ExerciseHistory lists every history record of an exercise, newest first.
func ExerciseHistory(history []models.HistoryEntry, name string) []ExerciseRecord {
	records := []ExerciseRecord{}
	for _, h := range history {
		for _, ex := range h.Exercises {
			if ex.Name != name {
				continue
			}
			rec := ExerciseRecord{
				Date:    h.Date,
				DayName: h.DayName,
				Sets:    append([]models.Set{}, ex.Sets...),
				Volume:  ComputeVolume([]models.SessionExercise{ex}),
			}
			for _, s := range ex.Sets {
				if s.Weight > rec.TopSet.Weight || (s.Weight == rec.TopSet.Weight && s.Reps > rec.TopSet.Reps) {
					rec.TopSet = s
				}
			}
			records = append(records, rec)
		}
	}
	return records
}

// Recent returns the newest history entry.
func Recent(history []models.HistoryEntry) (models.HistoryEntry, bool) {
	if len(history) == 0 {
		return models.HistoryEntry{}, false
	}
	return history[0], true
}
