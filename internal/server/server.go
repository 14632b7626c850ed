package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/strain/internal/ingest/alpha"
	"github.com/meltforce/strain/internal/metrics"
	"github.com/meltforce/strain/internal/workout"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	loop    *workout.Loop
	alpha   *alpha.Provider
	metrics *metrics.Metrics
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves mutating routes open.
func New(loop *workout.Loop, alphaProvider *alpha.Provider, m *metrics.Metrics, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		loop:    loop,
		alpha:   alphaProvider,
		metrics: m,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(s.metrics.Instrument)
	s.router.Use(CORS)

	s.router.Handle("/metrics", s.metrics.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		// Reads are open; tsnet handles access.
		r.Get("/state", s.handleGetState)
		r.Get("/days", s.handleListDays)
		r.Get("/exercises", s.handleListExercises)
		r.Get("/workout", s.handleGetWorkout)
		r.Get("/workout/suggestion", s.handleSuggestion)
		r.Get("/best-lifts", s.handleListBestLifts)
		r.Get("/history", s.handleHistory)
		r.Get("/history/recent", s.handleRecent)
		r.Get("/progress", s.handleProgress)

		r.Group(func(r chi.Router) {
			if s.apiKey != "" {
				r.Use(APIKeyAuth(s.apiKey))
			}
			r.Delete("/state", s.handleReset)

			r.Post("/days", s.handleAddDay)
			r.Patch("/days/{dayID}", s.handleRenameDay)
			r.Delete("/days/{dayID}", s.handleDeleteDay)
			r.Post("/days/{dayID}/exercises", s.handleAddExercise)
			r.Patch("/days/{dayID}/exercises/{exerciseID}", s.handleRenameExercise)
			r.Delete("/days/{dayID}/exercises/{exerciseID}", s.handleRemoveExercise)

			r.Post("/workout", s.handleStartWorkout)
			r.Post("/workout/sets", s.handleLogSet)
			r.Delete("/workout/sets/last", s.handleUndoSet)
			r.Post("/workout/advance", s.handleAdvance)
			r.Post("/workout/finish", s.handleFinish)
			r.Post("/workout/exercises", s.handleQuickAdd)

			r.Post("/best-lifts", s.handleTrackLift)
			r.Put("/best-lifts/{liftID}", s.handleRetrackLift)
			r.Delete("/best-lifts/{liftID}", s.handleUntrackLift)

			r.Put("/profile", s.handleUpdateProfile)
			r.Post("/import/alpha", s.handleAlphaImport)
		})
	})
}

// MountMCP serves an MCP transport at /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
}
