package workout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func startLoop(t *testing.T, e *Engine) *Loop {
	t.Helper()
	l := NewLoop(e)
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	t.Cleanup(cancel)
	return l
}

// TestLoopSerializesLogSets verifies concurrent callers each get their set
// applied exactly once.
func TestLoopSerializesLogSets(t *testing.T) {
	e, _ := newTestEngine(t, testState())
	l := startLoop(t, e)
	ctx := context.Background()

	if err := l.Do(ctx, func(ctx context.Context, e *Engine) error {
		_, err := e.Start(ctx, "legs")
		return err
	}); err != nil {
		t.Fatal(err)
	}

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.Do(ctx, func(ctx context.Context, e *Engine) error {
				_, err := e.LogSet(ctx, 100, 5)
				return err
			})
			if err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	st, err := l.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(st.CurrentWorkout.Exercises[0].Sets); got != n {
		t.Errorf("sets = %d, want %d", got, n)
	}
}

// TestLoopReturnsOperationError verifies domain errors reach the caller.
func TestLoopReturnsOperationError(t *testing.T) {
	e, _ := newTestEngine(t, testState())
	l := startLoop(t, e)

	err := l.Do(context.Background(), func(ctx context.Context, e *Engine) error {
		_, err := e.UndoLastSet(ctx)
		return err
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// TestLoopStopped verifies operations after shutdown fail fast.
func TestLoopStopped(t *testing.T) {
	e, _ := newTestEngine(t, testState())
	l := NewLoop(e)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	if _, err := l.Snapshot(context.Background()); !errors.Is(err, ErrLoopStopped) {
		t.Errorf("err = %v, want ErrLoopStopped", err)
	}
}

// TestLoopCallerTimeout verifies a caller stuck waiting for a turn gives up
// with its own context error.
func TestLoopCallerTimeout(t *testing.T) {
	e, _ := newTestEngine(t, testState())
	l := startLoop(t, e)

	release := make(chan struct{})
	busy := make(chan struct{})
	go l.Do(context.Background(), func(context.Context, *Engine) error {
		close(busy)
		<-release
		return nil
	})
	<-busy
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := l.Snapshot(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}

// TestLoopOperationOutlivesCaller verifies an operation that has started
// runs with a context unaffected by the caller's cancellation.
func TestLoopOperationOutlivesCaller(t *testing.T) {
	e, _ := newTestEngine(t, testState())
	l := startLoop(t, e)

	ctx, cancel := context.WithCancel(context.Background())
	err := l.Do(ctx, func(opCtx context.Context, _ *Engine) error {
		cancel()
		return opCtx.Err()
	})
	if err != nil {
		t.Errorf("operation context err = %v, want nil", err)
	}
}
