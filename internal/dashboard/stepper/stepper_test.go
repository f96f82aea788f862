package stepper

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/shandysiswandi/godna/internal/pkg/pkgmetric"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var steps = []string{"Upload", "Quality Control", "Classification", "Report"}

func TestAdvanceWraps(t *testing.T) {
	s := New(steps, time.Second)

	var got []int
	for i := 0; i < 6; i++ {
		got = append(got, s.Advance())
	}
	assert.Equal(t, []int{1, 2, 3, 4, 0, 1}, got)
}

func TestSnapshot(t *testing.T) {
	s := New(steps, time.Second)
	s.Advance()
	s.Advance()

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.Current)
	assert.False(t, snap.Finished)
	assert.Equal(t, []Step{
		{Name: "Upload", Completed: true},
		{Name: "Quality Control", Completed: true},
		{Name: "Classification"},
		{Name: "Report"},
	}, snap.Steps)

	s.Advance()
	s.Advance()
	assert.True(t, s.Snapshot().Finished)
}

func TestNewCopiesSteps(t *testing.T) {
	in := []string{"a", "b"}
	s := New(in, 0)
	in[0] = "changed"

	assert.Equal(t, "a", s.Snapshot().Steps[0].Name)
	assert.Equal(t, DefaultInterval, s.interval)
}

func TestRunTicks(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	rec := pkgmetric.NewRecorder()
	s := New(steps, 2*time.Second, WithClock(clock), WithMetrics(rec))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	blockCtx, blockCancel := context.WithTimeout(context.Background(), time.Second)
	defer blockCancel()
	require.NoError(t, clock.BlockUntilContext(blockCtx, 1), "ticker never armed")

	clock.Advance(time.Second)
	assert.Equal(t, 0, s.Snapshot().Current)

	for want := 1; want <= 3; want++ {
		clock.Advance(time.Second)
		require.Eventually(t, func() bool { return s.Snapshot().Current == want }, time.Second, time.Millisecond)
		clock.Advance(time.Second)
	}

	cancel()
	require.NoError(t, <-done)
	require.NoError(t, clock.BlockUntilContext(blockCtx, 0), "ticker must be stopped")
}
