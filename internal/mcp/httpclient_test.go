package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meltforce/strain/internal/models"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestSnapshot verifies the client fetches the state document and fills
// missing collections.
func TestSnapshot(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/state": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("method = %s, want GET", r.Method)
			}
			writeTestJSON(t, w, map[string]any{
				"days": []models.Day{{ID: "push", Name: "Push Day", Exercises: []models.Exercise{{ID: "bp", Name: "Bench Press"}}}},
				"history": []models.HistoryEntry{
					{ID: "h1", Date: "2026-03-10", DayName: "Push Day", Volume: 500,
						Exercises: []models.SessionExercise{{Name: "Bench Press", Sets: []models.Set{{Weight: 100, Reps: 5}}}}},
				},
			})
		},
	})
	defer ts.Close()

	st, err := NewHTTPClient(ts.URL + "/").Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(st.Days) != 1 || st.Days[0].Exercises[0].Name != "Bench Press" {
		t.Errorf("days = %+v", st.Days)
	}
	if len(st.History) != 1 || st.History[0].Volume != 500 {
		t.Errorf("history = %+v", st.History)
	}
	if st.BestLifts == nil {
		t.Error("best lifts should be normalized to an empty slice")
	}
	if st.CurrentWorkout != nil {
		t.Errorf("current workout = %+v, want nil", st.CurrentWorkout)
	}
}

// TestSnapshotServerError verifies non-200 responses become errors that carry
// the status code.
func TestSnapshotServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/state": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"workout loop stopped"}`))
		},
	})
	defer ts.Close()

	_, err := NewHTTPClient(ts.URL).Snapshot(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error = %v, want status 503", err)
	}
}

// TestHTTPClientAsDataSource verifies tool handlers work over the remote client.
func TestHTTPClientAsDataSource(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/state": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, testState())
		},
	})
	defer ts.Close()

	h := newTestHandlers(NewHTTPClient(ts.URL))
	res, err := h.getBestLifts(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	lifts := decodeResult[[]models.BestLift](t, res)
	if len(lifts) != 1 || lifts[0].Exercise != "Bench Press" {
		t.Errorf("best lifts = %+v", lifts)
	}
}
