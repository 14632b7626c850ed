package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/strain/internal/models"
	"github.com/meltforce/strain/internal/workout"
)

type nameRequest struct {
	Name string `json:"name"`
}

type liftRequest struct {
	Exercise string `json:"exercise"`
}

type profileRequest struct {
	Name  *string `json:"name"`
	Theme *string `json:"theme"`
}

// snapshot reads a deep copy of the state between engine operations.
func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (*models.State, bool) {
	st, err := s.loop.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return st, true
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	st, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var st *models.State
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		if err := e.Reset(ctx); err != nil {
			return err
		}
		st = e.Snapshot()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// --- Days ---

func (s *Server) handleListDays(w http.ResponseWriter, r *http.Request) {
	st, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, st.Days)
}

func (s *Server) handleAddDay(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var day models.Day
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		var err error
		day, err = e.AddDay(ctx, req.Name)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, day)
}

func (s *Server) handleRenameDay(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	dayID := chi.URLParam(r, "dayID")
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		return e.RenameDay(ctx, dayID, req.Name)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteDay(w http.ResponseWriter, r *http.Request) {
	dayID := chi.URLParam(r, "dayID")
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		return e.DeleteDay(ctx, dayID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	dayID := chi.URLParam(r, "dayID")
	var ex models.Exercise
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		var err error
		ex, err = e.AddExercise(ctx, dayID, req.Name)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ex)
}

func (s *Server) handleRenameExercise(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	dayID, exID := chi.URLParam(r, "dayID"), chi.URLParam(r, "exerciseID")
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		return e.RenameExercise(ctx, dayID, exID, req.Name)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	dayID, exID := chi.URLParam(r, "dayID"), chi.URLParam(r, "exerciseID")
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		return e.RemoveExercise(ctx, dayID, exID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	st, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, workout.AllExerciseNames(st.Days))
}

// --- Best lifts ---

func (s *Server) handleListBestLifts(w http.ResponseWriter, r *http.Request) {
	st, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, st.BestLifts)
}

func (s *Server) handleTrackLift(w http.ResponseWriter, r *http.Request) {
	var req liftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var lift models.BestLift
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		var err error
		lift, err = e.TrackExercise(ctx, req.Exercise)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, lift)
}

func (s *Server) handleRetrackLift(w http.ResponseWriter, r *http.Request) {
	var req liftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	liftID := chi.URLParam(r, "liftID")
	var lift models.BestLift
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		var err error
		lift, err = e.RetrackLift(ctx, liftID, req.Exercise)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lift)
}

func (s *Server) handleUntrackLift(w http.ResponseWriter, r *http.Request) {
	liftID := chi.URLParam(r, "liftID")
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		return e.UntrackLift(ctx, liftID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- History and progress ---

// handleHistory lists completed workouts newest first. With ?exercise= it
// lists that exercise's records instead.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	st, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	if name := strings.TrimSpace(r.URL.Query().Get("exercise")); name != "" {
		records := workout.ExerciseHistory(st.History, name)
		if limit > 0 && len(records) > limit {
			records = records[:limit]
		}
		writeJSON(w, http.StatusOK, records)
		return
	}

	history := st.History
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	st, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	entry, found := workout.Recent(st.History)
	if !found {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no completed workouts"})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	st, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, workout.VolumeSeries(st.History))
}

// --- Profile ---

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	// Check the theme up front so a bad request changes nothing.
	if req.Theme != nil && !models.ValidTheme(strings.TrimSpace(*req.Theme)) {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "theme must be dark or light"})
		return
	}

	var profile models.Profile
	err := s.run(r, func(ctx context.Context, e *workout.Engine) error {
		if req.Name != nil {
			if err := e.SetProfileName(ctx, *req.Name); err != nil {
				return err
			}
		}
		if req.Theme != nil {
			if err := e.SetTheme(ctx, *req.Theme); err != nil {
				return err
			}
		}
		profile = e.Snapshot().Profile
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// --- Import ---

func (s *Server) handleAlphaImport(w http.ResponseWriter, r *http.Request) {
	dryRun, _ := strconv.ParseBool(r.URL.Query().Get("dry_run"))
	result, err := s.alpha.Ingest(r.Context(), r.Body, dryRun)
	if err != nil {
		s.log.Error("alpha import error", "error", err)
		status := statusFor(err)
		if result == nil {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorBody{Error: err.Error()})
		return
	}
	s.metrics.HistoryImported(result.SessionsInserted)
	writeJSON(w, http.StatusOK, result)
}
