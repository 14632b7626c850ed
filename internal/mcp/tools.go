package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/strain/internal/models"
	"github.com/meltforce/strain/internal/workout"
)

// dateRange validates optional YYYY-MM-DD bounds. Empty bounds are open.
func dateRange(start, end string) (string, string, error) {
	for _, d := range []string{start, end} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(models.DateLayout, d); err != nil {
			return "", "", fmt.Errorf("date %q is not YYYY-MM-DD", d)
		}
	}
	if start != "" && end != "" && start > end {
		return "", "", fmt.Errorf("start %s is after end %s", start, end)
	}
	return start, end, nil
}

func inRange(date, start, end string) bool {
	return (start == "" || date >= start) && (end == "" || date <= end)
}

// filterHistory keeps entries inside the range, newest first, up to limit
// when limit > 0.
func filterHistory(history []models.HistoryEntry, start, end string, limit int) []models.HistoryEntry {
	out := []models.HistoryEntry{}
	for _, h := range history {
		if !inRange(h.Date, start, end) {
			continue
		}
		out = append(out, h)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// currentWorkoutView is the active session plus the prefill for its next set.
type currentWorkoutView struct {
	Workout         *models.Session     `json:"workout"`
	CurrentExercise string              `json:"currentExercise,omitempty"`
	Volume          float64             `json:"volume"`
	Next            *workout.Suggestion `json:"next,omitempty"`
}

func viewCurrentWorkout(st *models.State) currentWorkoutView {
	v := currentWorkoutView{Workout: st.CurrentWorkout}
	next, ok := workout.SuggestNext(st)
	if !ok {
		return v
	}
	v.CurrentExercise = next.Exercise
	v.Volume = workout.ComputeVolume(st.CurrentWorkout.Exercises)
	v.Next = &next
	return v
}

// --- Tool definitions ---

var toolListDays = mcp.NewTool("list_days",
	mcp.WithDescription("List training days with their exercise templates in order."),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List every distinct exercise name across all training days."),
)

var toolGetCurrentWorkout = mcp.NewTool("get_current_workout",
	mcp.WithDescription("Get the active workout: exercises, logged sets, the current exercise, running volume, and what was lifted for the next set last time. Returns workout=null when no session is active."),
)

var toolGetHistory = mcp.NewTool("get_history",
	mcp.WithDescription("List completed workouts newest first, each with exercises, sets and total volume."),
	mcp.WithString("start", mcp.Description("Earliest date (YYYY-MM-DD). Defaults to all history.")),
	mcp.WithString("end", mcp.Description("Latest date (YYYY-MM-DD). Defaults to today.")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of workouts. Defaults to 20.")),
)

var toolGetBestLifts = mcp.NewTool("get_best_lifts",
	mcp.WithDescription("Get the tracked best lifts (up to 3): exercise name, best weight and reps."),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Every recorded appearance of one exercise, newest first, with sets, volume and top set. Names match exactly."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exact exercise name (e.g. 'Bench Press')")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of records. Defaults to all.")),
)

var toolGetVolumeProgress = mcp.NewTool("get_volume_progress",
	mcp.WithDescription("Total volume per completed workout, oldest first, for charting progress."),
	mcp.WithString("start", mcp.Description("Earliest date (YYYY-MM-DD).")),
	mcp.WithString("end", mcp.Description("Latest date (YYYY-MM-DD).")),
)

// --- Tool handlers ---

func (h *handlers) snapshot(ctx context.Context, tool string) (*models.State, *mcp.CallToolResult) {
	st, err := h.ds.Snapshot(ctx)
	if err != nil {
		h.log.Error("mcp "+tool, "error", err)
		return nil, mcp.NewToolResultError("query failed: " + err.Error())
	}
	return st, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listDays(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, errResult := h.snapshot(ctx, "list_days")
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(st.Days)
}

func (h *handlers) listExercises(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, errResult := h.snapshot(ctx, "list_exercises")
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(workout.AllExerciseNames(st.Days))
}

func (h *handlers) getCurrentWorkout(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, errResult := h.snapshot(ctx, "get_current_workout")
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(viewCurrentWorkout(st))
}

func (h *handlers) getHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date range: " + err.Error()), nil
	}
	limit := req.GetInt("limit", 20)

	st, errResult := h.snapshot(ctx, "get_history")
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(filterHistory(st.History, start, end, limit))
}

func (h *handlers) getBestLifts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, errResult := h.snapshot(ctx, "get_best_lifts")
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(st.BestLifts)
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	limit := req.GetInt("limit", 0)

	st, errResult := h.snapshot(ctx, "get_exercise_history")
	if errResult != nil {
		return errResult, nil
	}
	records := workout.ExerciseHistory(st.History, name)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return jsonResult(map[string]any{
		"exercise": name,
		"records":  records,
	})
}

func (h *handlers) getVolumeProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date range: " + err.Error()), nil
	}

	st, errResult := h.snapshot(ctx, "get_volume_progress")
	if errResult != nil {
		return errResult, nil
	}
	points := []workout.VolumePoint{}
	for _, p := range workout.VolumeSeries(st.History) {
		if inRange(p.Date, start, end) {
			points = append(points, p)
		}
	}
	return jsonResult(points)
}
