package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/pkg/pkglog"
)

const (
	defaultWorkers     = 4
	defaultBaseBackoff = 100 * time.Millisecond
	defaultDedupWindow = 1024
)

// Handler answers one chat event.
type Handler interface {
	Handle(ctx context.Context, event entity.ChatEvent) error
}

// ConsumerConfig tunes a ChatConsumer. Zero values pick the defaults; a
// MaxRetries of 0 means a single attempt.
//
// DedupWindow bounds how many recent event ids are remembered for duplicate
// detection; the oldest id is forgotten first.
type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
	DedupWindow int
	Clock       clockwork.Clock
}

func (cfg ConsumerConfig) withDefaults() ConsumerConfig {
	if cfg.Workers < 1 {
		cfg.Workers = defaultWorkers
	}
	cfg.MaxRetries = max(cfg.MaxRetries, 0)
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = defaultBaseBackoff
	}
	if cfg.DedupWindow < 1 {
		cfg.DedupWindow = defaultDedupWindow
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return cfg
}

// ChatConsumer answers queued chat messages on a pool of workers. An EventID
// is handled at most once within the dedup window unless every attempt
// failed, in which case it may be published again.
type ChatConsumer struct {
	bus     *Bus
	handler Handler
	cfg     ConsumerConfig

	mu sync.Mutex
	// handled maps a claimed id to its claim sequence; order lists claims
	// oldest first and may hold stale entries for released ids.
	handled map[string]uint64
	order   []claimed
	seq     uint64
	wg      sync.WaitGroup

	// ctx is canceled by Stop; it aborts reply delays and backoff waits.
	ctx    context.Context
	cancel context.CancelFunc
}

type claimed struct {
	id  string
	seq uint64
}

func NewChatConsumer(bus *Bus, handler Handler, cfg ConsumerConfig) *ChatConsumer {
	ctx, cancel := context.WithCancel(context.Background())

	return &ChatConsumer{
		bus:     bus,
		handler: handler,
		cfg:     cfg.withDefaults(),
		handled: make(map[string]uint64),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (c *ChatConsumer) Start() {
	for i := 0; i < c.cfg.Workers; i++ {
		c.wg.Add(1)
		go c.work()
	}
}

// Stop closes the bus and lets the workers drain it. When ctx ends first,
// pending replies are abandoned and ctx.Err() is returned.
func (c *ChatConsumer) Stop(ctx context.Context) error {
	c.bus.Close()

	drained := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(drained)
	}()

	var err error
	select {
	case <-drained:
	case <-ctx.Done():
		err = ctx.Err()
		slog.WarnContext(ctx, "abandoning pending chat replies", "pending", c.bus.Pending())
	}

	c.cancel()
	<-drained
	return err
}

func (c *ChatConsumer) work() {
	defer c.wg.Done()

	for event := range c.bus.Events() {
		if c.ctx.Err() != nil {
			continue
		}
		c.consume(event)
	}
}

func (c *ChatConsumer) consume(event entity.ChatEvent) {
	if c.handler == nil {
		return
	}

	ctx := pkglog.SetSessionID(c.ctx, event.SessionID)

	if !c.claim(event.EventID) {
		slog.InfoContext(ctx, "skip duplicate chat event", "event_id", event.EventID)
		return
	}

	backoff := c.cfg.BaseBackoff
	for attempt := 0; ; attempt++ {
		err := c.handler.Handle(ctx, event)
		if err == nil {
			return
		}

		if attempt == c.cfg.MaxRetries {
			slog.ErrorContext(ctx, "failed to answer chat message after retries",
				"event_id", event.EventID, "attempts", attempt+1, "error", err)
			c.release(event.EventID)
			return
		}

		slog.WarnContext(ctx, "retrying chat reply", "event_id", event.EventID, "attempt", attempt+1, "backoff", backoff.String(), "error", err)
		if !c.wait(backoff) {
			c.release(event.EventID)
			return
		}
		backoff *= 2
	}
}

func (c *ChatConsumer) claim(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.handled[id]; ok {
		return false
	}

	c.seq++
	c.handled[id] = c.seq
	c.order = append(c.order, claimed{id: id, seq: c.seq})

	for len(c.order) > 0 {
		oldest := c.order[0]
		live := c.handled[oldest.id] == oldest.seq
		if live && len(c.handled) <= c.cfg.DedupWindow {
			break
		}
		if live {
			delete(c.handled, oldest.id)
		}
		c.order = c.order[1:]
	}
	return true
}

// remembered reports how many event ids are currently held for dedup.
func (c *ChatConsumer) remembered() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.handled)
}

func (c *ChatConsumer) release(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.handled, id)
}

// wait sleeps d on the consumer clock and reports false if Stop gave up first.
func (c *ChatConsumer) wait(d time.Duration) bool {
	select {
	case <-c.cfg.Clock.After(d):
		return true
	case <-c.ctx.Done():
		return false
	}
}
