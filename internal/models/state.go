package models

import (
	"fmt"
	"math"
	"strings"
)

// MaxBestLifts is the number of exercises that can be tracked as best lifts at once.
const MaxBestLifts = 3

// DateLayout is the calendar-date format used for sessions and history entries.
const DateLayout = "2006-01-02"

// Theme values accepted for the profile.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// State is the aggregate root persisted as one document. Every entity is owned
// by exactly one State; nothing is shared by reference across states.
type State struct {
	Days           []Day          `json:"days"`
	CurrentWorkout *Session       `json:"currentWorkout"`
	BestLifts      []BestLift     `json:"bestLifts"`
	History        []HistoryEntry `json:"history"`
	Profile        Profile        `json:"profile"`
}

// Day is a reusable template of exercises performed together.
type Day struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
}

// Exercise is an exercise template owned by a Day.
type Exercise struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Session is the active workout. Day and exercise names are copied at start
// and never follow later edits to the source Day.
type Session struct {
	ID                   string            `json:"id"`
	Date                 string            `json:"date"`
	DayID                string            `json:"dayId"`
	DayName              string            `json:"dayName"`
	CurrentExerciseIndex int               `json:"currentExerciseIndex"`
	Exercises            []SessionExercise `json:"exercises"`
}

// SessionExercise is an exercise as performed within a session or history entry.
type SessionExercise struct {
	Name string `json:"name"`
	Sets []Set  `json:"sets"`
}

// Set is one logged weight x reps unit.
type Set struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// HistoryEntry is the immutable record of a completed session.
type HistoryEntry struct {
	ID        string            `json:"id"`
	Date      string            `json:"date"`
	DayID     string            `json:"dayId"`
	DayName   string            `json:"dayName"`
	Volume    float64           `json:"volume"`
	Exercises []SessionExercise `json:"exercises"`
}

// BestLift is the current best weight/reps for a tracked exercise.
// Exercise matches session exercises by exact name, not by id.
type BestLift struct {
	ID       string  `json:"id"`
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
	Reps     int     `json:"reps"`
}

// Profile holds user preferences.
type Profile struct {
	Name  string `json:"name"`
	Theme string `json:"theme"`
}

// Valid reports whether both weight and reps are strictly positive and the
// weight is finite. Non-finite weights cannot be encoded as JSON.
func (s Set) Valid() bool {
	if math.IsNaN(s.Weight) || math.IsInf(s.Weight, 0) {
		return false
	}
	return s.Weight > 0 && s.Reps > 0
}

// Volume returns weight x reps.
func (s Set) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

// Current returns the exercise under the session cursor, or nil if the cursor is out of range.
func (s *Session) Current() *SessionExercise {
	if s == nil || s.CurrentExerciseIndex < 0 || s.CurrentExerciseIndex >= len(s.Exercises) {
		return nil
	}
	return &s.Exercises[s.CurrentExerciseIndex]
}

// IsLast reports whether the cursor points at the final exercise.
func (s *Session) IsLast() bool {
	return s.CurrentExerciseIndex >= len(s.Exercises)-1
}

// FindDay returns the day with the given id.
func (st *State) FindDay(id string) (*Day, bool) {
	for i := range st.Days {
		if st.Days[i].ID == id {
			return &st.Days[i], true
		}
	}
	return nil, false
}

// FindBestLift returns the tracked lift for an exercise name (exact match).
func (st *State) FindBestLift(exercise string) (*BestLift, bool) {
	for i := range st.BestLifts {
		if st.BestLifts[i].Exercise == exercise {
			return &st.BestLifts[i], true
		}
	}
	return nil, false
}

// FindExercise returns the exercise template with the given id.
func (d *Day) FindExercise(id string) (int, bool) {
	for i := range d.Exercises {
		if d.Exercises[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Normalize replaces nil collections with empty ones so the document always
// encodes arrays rather than nulls, and fills in a missing theme.
func (st *State) Normalize() {
	if st.Days == nil {
		st.Days = []Day{}
	}
	for i := range st.Days {
		if st.Days[i].Exercises == nil {
			st.Days[i].Exercises = []Exercise{}
		}
	}
	if st.CurrentWorkout != nil {
		normalizeExercises(st.CurrentWorkout.Exercises)
		if st.CurrentWorkout.Exercises == nil {
			st.CurrentWorkout.Exercises = []SessionExercise{}
		}
	}
	if st.BestLifts == nil {
		st.BestLifts = []BestLift{}
	}
	if st.History == nil {
		st.History = []HistoryEntry{}
	}
	for i := range st.History {
		normalizeExercises(st.History[i].Exercises)
		if st.History[i].Exercises == nil {
			st.History[i].Exercises = []SessionExercise{}
		}
	}
	if st.Profile.Theme == "" {
		st.Profile.Theme = ThemeDark
	}
}

func normalizeExercises(exs []SessionExercise) {
	for i := range exs {
		if exs[i].Sets == nil {
			exs[i].Sets = []Set{}
		}
	}
}

// Check verifies the structural invariants a restored document must satisfy.
func (st *State) Check() error {
	if w := st.CurrentWorkout; w != nil {
		if len(w.Exercises) == 0 {
			return fmt.Errorf("current workout has no exercises")
		}
		if w.CurrentExerciseIndex < 0 || w.CurrentExerciseIndex >= len(w.Exercises) {
			return fmt.Errorf("current exercise index %d out of range [0,%d)", w.CurrentExerciseIndex, len(w.Exercises))
		}
	}
	if w := st.CurrentWorkout; w != nil {
		if err := checkSets(w.Exercises); err != nil {
			return fmt.Errorf("current workout: %w", err)
		}
	}
	for _, h := range st.History {
		if err := checkSets(h.Exercises); err != nil {
			return fmt.Errorf("history entry %s: %w", h.ID, err)
		}
	}
	if len(st.BestLifts) > MaxBestLifts {
		return fmt.Errorf("%d best lifts tracked, max %d", len(st.BestLifts), MaxBestLifts)
	}
	seen := make(map[string]bool, len(st.BestLifts))
	for _, l := range st.BestLifts {
		if seen[l.Exercise] {
			return fmt.Errorf("best lift %q tracked twice", l.Exercise)
		}
		seen[l.Exercise] = true
	}
	return nil
}

func checkSets(exs []SessionExercise) error {
	for _, ex := range exs {
		for i, set := range ex.Sets {
			if !set.Valid() {
				return fmt.Errorf("%s set %d: invalid set %gx%d", ex.Name, i+1, set.Weight, set.Reps)
			}
		}
	}
	return nil
}

// ValidTheme reports whether theme is a supported profile theme.
func ValidTheme(theme string) bool {
	switch strings.TrimSpace(theme) {
	case ThemeDark, ThemeLight:
		return true
	}
	return false
}
