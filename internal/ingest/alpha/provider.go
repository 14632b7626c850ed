package alpha

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/meltforce/strain/internal/ingest"
	"github.com/meltforce/strain/internal/workout"
)

// Runner submits an operation to the workout engine. *workout.Loop satisfies it.
type Runner interface {
	Do(ctx context.Context, fn func(ctx context.Context, e *workout.Engine) error) error
}

// Provider imports Alpha Progression CSV exports into history.
type Provider struct {
	run Runner
	log *slog.Logger
}

// NewProvider creates a new Alpha Progression import provider.
func NewProvider(run Runner, log *slog.Logger) *Provider {
	return &Provider{run: run, log: log}
}

// Ingest parses an export and inserts its sessions into history. Sessions
// already imported are skipped, so re-importing the same file is a no-op.
// With dryRun set nothing is written.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, dryRun bool) (*ingest.Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	conv := ToHistory(sessions)

	result := &ingest.Result{
		SessionsReceived: len(sessions),
		SessionsDropped:  conv.SessionsDropped,
		SetsReceived:     conv.SetsReceived,
		SetsDropped:      conv.SetsDropped,
		DryRun:           dryRun,
	}
	if dryRun {
		result.Message = fmt.Sprintf("would import up to %d sessions", len(conv.Entries))
		return result, nil
	}

	var inserted int
	err = p.run.Do(ctx, func(ctx context.Context, e *workout.Engine) error {
		var err error
		inserted, err = e.ImportHistory(ctx, conv.Entries)
		return err
	})
	// A failed save still leaves the entries in memory.
	result.SessionsInserted = inserted
	result.SessionsSkipped = len(conv.Entries) - inserted
	if err != nil {
		return result, fmt.Errorf("importing history: %w", err)
	}

	p.log.Info("alpha import complete",
		"sessions", result.SessionsReceived,
		"inserted", result.SessionsInserted,
		"skipped", result.SessionsSkipped,
		"sets_dropped", result.SetsDropped,
	)
	return result, nil
}
