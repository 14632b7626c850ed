// Package mcp exposes the workout log to agents over the Model Context Protocol.
// Everything here is read-only.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Strain", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Strain workout log. Query training days, the active workout, completed workout history, best lifts, and volume progress. Weights are in kg; volume is the sum of weight x reps."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListDays, Handler: h.listDays},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetCurrentWorkout, Handler: h.getCurrentWorkout},
		server.ServerTool{Tool: toolGetHistory, Handler: h.getHistory},
		server.ServerTool{Tool: toolGetBestLifts, Handler: h.getBestLifts},
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
		server.ServerTool{Tool: toolGetVolumeProgress, Handler: h.getVolumeProgress},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCurrentWorkout, Handler: h.currentWorkout},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resCurrentWorkout = mcp.NewResource(
	"strain://current_workout",
	"Current Workout",
	mcp.WithResourceDescription("The active workout session with logged sets, or null when idle"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"strain://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("The most recent completed workouts, newest first"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"strain://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All exercise names across training days, with tracked best lifts"),
	mcp.WithMIMEType("application/json"),
)
