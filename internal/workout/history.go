package workout

import (
	"context"

	"github.com/meltforce/strain/internal/models"
)

// ImportHistory inserts completed sessions recorded elsewhere. Each entry is
// placed before the first existing entry that is not newer than it, so
// history stays newest-first without reordering what is already stored.
// Entries whose id is already present are skipped. Returns the number inserted.
func (e *Engine) ImportHistory(ctx context.Context, entries []models.HistoryEntry) (int, error) {
	have := make(map[string]bool, len(e.st.History))
	for _, h := range e.st.History {
		have[h.ID] = true
	}

	inserted := 0
	for _, entry := range entries {
		if have[entry.ID] || len(entry.Exercises) == 0 {
			continue
		}
		have[entry.ID] = true
		entry.Exercises = models.CloneExercises(entry.Exercises)
		entry.Volume = ComputeVolume(entry.Exercises)

		pos := len(e.st.History)
		for i, h := range e.st.History {
			if h.Date <= entry.Date {
				pos = i
				break
			}
		}
		e.st.History = append(e.st.History, models.HistoryEntry{})
		copy(e.st.History[pos+1:], e.st.History[pos:])
		e.st.History[pos] = entry
		inserted++
	}

	if inserted == 0 {
		return 0, nil
	}
	e.log.Info("history imported", "inserted", inserted, "skipped", len(entries)-inserted)
	return inserted, e.persist(ctx, "import history")
}
