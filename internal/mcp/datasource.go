package mcp

import (
	"context"

	"github.com/meltforce/strain/internal/models"
	"github.com/meltforce/strain/internal/workout"
)

// DataSource reads the application state for MCP tools. Both *workout.Loop
// (in-process) and HTTPClient (remote via REST API) satisfy this interface.
// Tools derive everything else from the snapshot, so both modes answer alike.
type DataSource interface {
	Snapshot(ctx context.Context) (*models.State, error)
}

// Compile-time check: *workout.Loop satisfies DataSource.
var _ DataSource = (*workout.Loop)(nil)
