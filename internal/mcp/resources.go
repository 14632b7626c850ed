package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/strain/internal/models"
	"github.com/meltforce/strain/internal/workout"
)

const recentWorkoutsLimit = 10

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) currentWorkout(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	st, err := h.ds.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, viewCurrentWorkout(st))
}

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	st, err := h.ds.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, filterHistory(st.History, "", "", recentWorkoutsLimit))
}

type catalogEntry struct {
	Name     string           `json:"name"`
	BestLift *models.BestLift `json:"bestLift,omitempty"`
}

func (h *handlers) exerciseCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	st, err := h.ds.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	catalog := []catalogEntry{}
	for _, name := range workout.AllExerciseNames(st.Days) {
		entry := catalogEntry{Name: name}
		if lift, ok := st.FindBestLift(name); ok {
			entry.BestLift = lift
		}
		catalog = append(catalog, entry)
	}
	return jsonResource(req.Params.URI, catalog)
}
