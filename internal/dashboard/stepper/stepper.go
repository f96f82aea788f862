// Package stepper drives the looping pipeline progress indicator.
package stepper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/shandysiswandi/godna/internal/pkg/pkgmetric"
)

// DefaultInterval is the time between two steps.
const DefaultInterval = 2 * time.Second

// Step is one named pipeline stage and whether the stepper has passed it.
type Step struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// Snapshot is the stepper state at one instant. Current counts the completed
// steps, so Current == len(Steps) means the whole pipeline is done.
type Snapshot struct {
	Steps    []Step `json:"steps"`
	Current  int    `json:"current"`
	Finished bool   `json:"finished"`
}

// Stepper cycles through the pipeline stages on a fixed interval. It is safe
// for concurrent use; Run is the only writer besides Advance.
type Stepper struct {
	steps    []string
	interval time.Duration
	clock    clockwork.Clock
	metrics  *pkgmetric.Recorder

	mu      sync.RWMutex
	current int
}

type Option func(*Stepper)

// WithClock replaces the wall clock, e.g. with a clockwork.FakeClock in tests.
func WithClock(c clockwork.Clock) Option {
	return func(s *Stepper) { s.clock = c }
}

func WithMetrics(m *pkgmetric.Recorder) Option {
	return func(s *Stepper) { s.metrics = m }
}

// New returns a stepper at position 0. A non-positive interval falls back
// to DefaultInterval.
func New(steps []string, interval time.Duration, opts ...Option) *Stepper {
	if interval <= 0 {
		interval = DefaultInterval
	}

	s := &Stepper{
		steps:    append([]string(nil), steps...),
		interval: interval,
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Advance moves one step forward, wrapping from len(steps) back to 0, and
// returns the new position.
func (s *Stepper) Advance() int {
	s.mu.Lock()
	s.current = (s.current + 1) % (len(s.steps) + 1)
	cur := s.current
	s.mu.Unlock()

	s.metrics.SetPipelineStep(cur)
	return cur
}

// Run advances on every tick until ctx is done.
func (s *Stepper) Run(ctx context.Context) error {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "pipeline stepper started", "steps", len(s.steps), "interval", s.interval.String())

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "pipeline stepper stopped")
			return nil
		case <-ticker.Chan():
			s.Advance()
		}
	}
}

// Snapshot copies the current position and per-step completion.
func (s *Stepper) Snapshot() Snapshot {
	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()

	steps := make([]Step, len(s.steps))
	for i, name := range s.steps {
		steps[i] = Step{Name: name, Completed: i < cur}
	}

	return Snapshot{
		Steps:    steps,
		Current:  cur,
		Finished: cur == len(s.steps),
	}
}
