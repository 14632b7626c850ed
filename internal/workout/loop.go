package workout

import (
	"context"
	"errors"

	"github.com/meltforce/strain/internal/models"
)

// ErrLoopStopped is returned when an operation is submitted after Run returned.
var ErrLoopStopped = errors.New("workout loop stopped")

// Loop owns an Engine on a single goroutine. Operations submitted with Do run
// one at a time, each to completion, in submission order.
type Loop struct {
	engine *Engine
	ops    chan func()
	done   chan struct{}
}

// NewLoop wraps an engine. Nothing runs until Run is called.
func NewLoop(e *Engine) *Loop {
	return &Loop{
		engine: e,
		ops:    make(chan func()),
		done:   make(chan struct{}),
	}
}

// Run processes operations until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case op := <-l.ops:
			op()
		case <-ctx.Done():
			return
		}
	}
}

// Do runs fn on the loop goroutine and returns its error. ctx only bounds the
// wait for a turn: once fn has started it runs to completion with a context
// that is never cancelled.
func (l *Loop) Do(ctx context.Context, fn func(ctx context.Context, e *Engine) error) error {
	result := make(chan error, 1)
	opCtx := context.WithoutCancel(ctx)
	op := func() { result <- fn(opCtx, l.engine) }

	select {
	case l.ops <- op:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopStopped
	}
	return <-result
}

// Snapshot returns a deep copy of the state taken between operations.
func (l *Loop) Snapshot(ctx context.Context) (*models.State, error) {
	var st *models.State
	err := l.Do(ctx, func(_ context.Context, e *Engine) error {
		st = e.Snapshot()
		return nil
	})
	return st, err
}
