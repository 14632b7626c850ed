package alpha

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/strain/internal/models"
	"github.com/meltforce/strain/internal/workout"
)

// sessionNamespace scopes the ids of imported sessions so the same export
// always yields the same history entry ids.
var sessionNamespace = uuid.MustParse("6f1d3a52-8c2e-4b7a-9e41-0d5c7b2f8a13")

// SessionID returns the deterministic history id for an exported session.
func SessionID(s models.AlphaSession) string {
	key := s.Name + "|" + s.Date.Format(time.RFC3339)
	return uuid.NewSHA1(sessionNamespace, []byte(key)).String()
}

// DayName shortens "Legs · Day 2 · Week 4 · Push-Pull-Legs" to "Legs".
func DayName(sessionName string) string {
	name, _, _ := strings.Cut(sessionName, " · ")
	return strings.TrimSpace(name)
}

// Conversion counts what ToHistory kept and dropped.
type Conversion struct {
	Entries         []models.HistoryEntry
	SetsReceived    int
	SetsDropped     int
	SessionsDropped int
}

// ToHistory turns parsed sessions into history entries. Warmups and sets
// without positive weight and reps are dropped, then exercises left empty,
// then sessions left empty. Bodyweight-plus sets count only the added load.
func ToHistory(sessions []models.AlphaSession) Conversion {
	var c Conversion
	for _, s := range sessions {
		entry := models.HistoryEntry{
			ID:        SessionID(s),
			Date:      s.Date.Format(models.DateLayout),
			DayName:   DayName(s.Name),
			Exercises: []models.SessionExercise{},
		}
		for _, ex := range s.Exercises {
			c.SetsReceived += len(ex.Sets)
			var kept []models.Set
			for _, as := range ex.WorkingSets() {
				set := models.Set{Weight: as.WeightKg, Reps: as.Reps}
				if set.Valid() {
					kept = append(kept, set)
				}
			}
			c.SetsDropped += len(ex.Sets) - len(kept)
			if len(kept) > 0 {
				entry.Exercises = append(entry.Exercises, models.SessionExercise{Name: ex.Name, Sets: kept})
			}
		}
		if len(entry.Exercises) == 0 {
			c.SessionsDropped++
			continue
		}
		entry.Volume = workout.ComputeVolume(entry.Exercises)
		c.Entries = append(c.Entries, entry)
	}
	return c
}
