package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/meltforce/strain/internal/workout"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, workout.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, workout.ErrCapacity), errors.Is(err, workout.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, workout.ErrInvalidInput),
		errors.Is(err, workout.ErrEmptyDay),
		errors.Is(err, workout.ErrUnknownExercise),
		errors.Is(err, workout.ErrNothingToUndo):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workout.ErrLoopStopped),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

// maxBody bounds JSON request bodies.
const maxBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(v)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("invalid JSON: %v", err)})
		return false
	}
	return true
}

// run submits fn to the engine loop on behalf of the request.
func (s *Server) run(r *http.Request, fn func(ctx context.Context, e *workout.Engine) error) error {
	return s.loop.Do(r.Context(), fn)
}
