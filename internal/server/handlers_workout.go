package server

import (
	"context"
	"net/http"

	"github.com/meltforce/strain/internal/models"
	"github.com/meltforce/strain/internal/workout"
)

type startRequest struct {
	DayID string `json:"dayId"`
}

type setRequest struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// advanceResponse carries the new history entry when advancing finished the
// session, otherwise the session with its moved cursor.
type advanceResponse struct {
	Finished bool                 `json:"finished"`
	Entry    *models.HistoryEntry `json:"entry,omitempty"`
	Workout  *models.Session      `json:"workout,omitempty"`
}

// handleGetWorkout returns the active session, or null when idle.
func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	st, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, st.CurrentWorkout)
}

func (s *Server) handleStartWorkout(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var session *models.Session
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		var err error
		session, err = e.Start(ctx, req.DayID)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.WorkoutStarted()
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleLogSet(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var res workout.LogResult
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		var err error
		res, err = e.LogSet(ctx, req.Weight, req.Reps)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.SetLogged()
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleUndoSet(w http.ResponseWriter, r *http.Request) {
	var removed models.Set
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		var err error
		removed, err = e.UndoLastSet(ctx)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, removed)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var resp advanceResponse
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		entry, err := e.Advance(ctx)
		if err != nil {
			return err
		}
		if entry != nil {
			resp = advanceResponse{Finished: true, Entry: entry}
			return nil
		}
		resp.Workout = e.Snapshot().CurrentWorkout
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	var entry *models.HistoryEntry
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		var err error
		entry, err = e.Finish(ctx)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, advanceResponse{Finished: true, Entry: entry})
}

// handleQuickAdd appends an exercise to the active session. Without one it
// does nothing and returns null.
func (s *Server) handleQuickAdd(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var session *models.Session
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		if err := e.QuickAddExercise(ctx, req.Name); err != nil {
			return err
		}
		session = e.Snapshot().CurrentWorkout
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleSuggestion(w http.ResponseWriter, r *http.Request) {
	var sg workout.Suggestion
	err := s.run(r, func(_ context.Context, e *workout.Engine) error {
		var err error
		sg, err = e.NextSuggestion()
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sg)
}
