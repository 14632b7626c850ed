// Package metrics exposes Prometheus collectors for the HTTP surface and the
// workout engine.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/strain/internal/models"
	"github.com/meltforce/strain/internal/workout"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "strain"

// Metrics owns a registry and the collectors registered on it.
type Metrics struct {
	reg *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	setsLogged       prometheus.Counter
	workoutsStarted  prometheus.Counter
	workoutsFinished prometheus.Counter
	workoutVolume    prometheus.Histogram
	historyImported  prometheus.Counter
	stateSaves       *prometheus.CounterVec
}

// New creates a Metrics with its own registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"method", "route"},
		),
		setsLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workout",
			Name:      "sets_logged_total",
			Help:      "Total number of sets logged.",
		}),
		workoutsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workout",
			Name:      "started_total",
			Help:      "Total number of workouts started.",
		}),
		workoutsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workout",
			Name:      "finished_total",
			Help:      "Total number of workouts completed into history.",
		}),
		workoutVolume: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "workout",
			Name:      "volume_kg",
			Help:      "Total volume of completed workouts.",
			Buckets:   prometheus.ExponentialBuckets(500, 2, 8), // 500kg to 64t
		}),
		historyImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "imported_total",
			Help:      "Total number of history entries imported.",
		}),
		stateSaves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "state",
				Name:      "saves_total",
				Help:      "State document saves by result.",
			},
			[]string{"result"},
		),
	}

	m.reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.setsLogged,
		m.workoutsStarted,
		m.workoutsFinished,
		m.workoutVolume,
		m.historyImported,
		m.stateSaves,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Instrument records request counts and durations by chi route pattern, so
// ids in the path do not create new series.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// SetLogged counts one logged set.
func (m *Metrics) SetLogged() { m.setsLogged.Inc() }

// WorkoutStarted counts one started session.
func (m *Metrics) WorkoutStarted() { m.workoutsStarted.Inc() }

// WorkoutFinished is the engine's completion callback.
func (m *Metrics) WorkoutFinished(entry models.HistoryEntry) {
	m.workoutsFinished.Inc()
	m.workoutVolume.Observe(entry.Volume)
}

// HistoryImported counts imported history entries.
func (m *Metrics) HistoryImported(n int) { m.historyImported.Add(float64(n)) }

// Store wraps a state store and counts save outcomes.
func (m *Metrics) Store(inner workout.Store) workout.Store {
	return &countingStore{Store: inner, saves: m.stateSaves}
}

type countingStore struct {
	workout.Store
	saves *prometheus.CounterVec
}

func (s *countingStore) Save(ctx context.Context, st *models.State) error {
	err := s.Store.Save(ctx, st)
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.saves.WithLabelValues(result).Inc()
	return err
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush lets streaming handlers behind the recorder flush.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
