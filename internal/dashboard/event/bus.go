package event

import (
	"context"
	"errors"
	"sync"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
)

var (
	ErrBusClosed      = errors.New("event bus is closed")
	ErrMissingEventID = errors.New("chat event has no id")
)

// DefaultQueueSize is used when NewBus receives a non-positive size.
const DefaultQueueSize = 512

// Bus queues chat messages waiting for a bot reply. SendChat publishes and
// the ChatConsumer workers drain it; closing it lets the workers finish what
// is queued and exit.
type Bus struct {
	mu     sync.RWMutex
	closed bool
	queue  chan entity.ChatEvent
}

func NewBus(size int) *Bus {
	if size < 1 {
		size = DefaultQueueSize
	}

	return &Bus{queue: make(chan entity.ChatEvent, size)}
}

// Publish enqueues event, blocking while the queue is full until ctx is
// done. Events need an id because consumers skip ids they already answered.
func (b *Bus) Publish(ctx context.Context, event entity.ChatEvent) error {
	if event.EventID == "" {
		return ErrMissingEventID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	select {
	case b.queue <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events is drained by consumers until the bus is closed.
func (b *Bus) Events() <-chan entity.ChatEvent {
	return b.queue
}

// Pending reports how many messages still wait for a reply.
func (b *Bus) Pending() int {
	return len(b.queue)
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.queue)
}
