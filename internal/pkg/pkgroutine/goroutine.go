package pkgroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 10

// Manager runs named tasks in goroutines, at most max at a time.
type Manager struct {
	mu      sync.Mutex
	errs    []error
	running map[string]int
	wg      sync.WaitGroup
	sema    chan struct{}
}

// NewManager creates a Manager allowing maxGoroutine concurrent tasks.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}

	return &Manager{
		running: make(map[string]int),
		sema:    make(chan struct{}, maxGoroutine),
	}
}

// Go runs f in a goroutine once a slot is free. If ctx ends first, f never
// runs. Long-lived loops hold their slot until ctx ends. A task that returns
// context.Canceled is treated as a clean stop.
func (g *Manager) Go(ctx context.Context, name string, f func(ctx context.Context) error) {
	select {
	case g.sema <- struct{}{}:
	case <-ctx.Done():
		slog.WarnContext(ctx, "task canceled before start", "task", name, "because", ctx.Err())
		return
	}

	g.track(name, 1)
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() { <-g.sema }()
		defer g.track(name, -1)

		if err := g.run(ctx, name, f); err != nil {
			g.mu.Lock()
			g.errs = append(g.errs, fmt.Errorf("%s: %w", name, err))
			g.mu.Unlock()
		}
	}()
}

func (g *Manager) run(ctx context.Context, name string, f func(ctx context.Context) error) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic in background task", "task", name, "panic", rvr, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", rvr)
		}
	}()

	if ctx.Err() != nil {
		return nil
	}

	err = f(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (g *Manager) track(name string, delta int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.running[name] += delta
	if g.running[name] <= 0 {
		delete(g.running, name)
	}
}

// Running lists the names of tasks still in flight, sorted.
func (g *Manager) Running() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	names := make([]string, 0, len(g.running))
	for name := range g.running {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Wait blocks until every started task returns and joins their errors.
func (g *Manager) Wait() error {
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}
