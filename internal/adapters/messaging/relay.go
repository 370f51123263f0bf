package messaging

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/messmate/mess-client/internal/core/ports"
)

const (
	// How long a queued event may wait on the broker before being dropped.
	eventPublishTimeout = 30 * time.Second

	// An event that has been retried this often is abandoned.
	maxPublishAttempts = 5

	retryBackoff = 5 * time.Second

	// Readiness turns false when nothing has moved for this long while
	// events are queued.
	staleThreshold = 5 * time.Minute

	drainTimeout = 10 * time.Second
)

// Relay decouples session operations from the broker: publishers enqueue
// into an in-memory spool and return immediately; a single background
// goroutine drains the spool into the sink with retries. Losing events on
// process exit is acceptable for an audit stream; blocking a login on
// RabbitMQ is not.
type Relay struct {
	sink  ports.SessionEventPublisher
	queue chan ports.SessionEvent

	mu            sync.Mutex
	lastProcessed time.Time
	running       bool
}

var _ ports.SessionEventPublisher = (*Relay)(nil)

func NewRelay(sink ports.SessionEventPublisher, buffer int) *Relay {
	if buffer <= 0 {
		buffer = 64
	}
	return &Relay{
		sink:          sink,
		queue:         make(chan ports.SessionEvent, buffer),
		lastProcessed: time.Now(),
	}
}

// PublishSessionEvent enqueues without blocking. A full spool drops the
// event with a log line rather than stalling the session operation that
// produced it.
func (r *Relay) PublishSessionEvent(ctx context.Context, evt ports.SessionEvent) error {
	select {
	case r.queue <- evt:
		return nil
	default:
		log.Printf("event relay: spool full, dropping %s event", evt.Kind)
		return nil
	}
}

// IsHealthy reports liveness: is the drain loop running.
func (r *Relay) IsHealthy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// IsReady reports whether the relay is moving events: running, and not
// stuck with a backlog.
func (r *Relay) IsReady() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return false
	}
	if len(r.queue) > 0 && time.Since(r.lastProcessed) > staleThreshold {
		return false
	}
	return true
}

// Start runs the drain loop until the context is cancelled, then drains
// whatever is still queued within drainTimeout. Blocking call.
func (r *Relay) Start(ctx context.Context) error {
	r.setRunning(true)
	defer r.setRunning(false)

	log.Printf("event relay: draining session events to broker")

	for {
		select {
		case <-ctx.Done():
			log.Printf("event relay: shutting down, draining %d queued events", len(r.queue))
			r.drain()
			return ctx.Err()

		case evt := <-r.queue:
			r.deliver(ctx, evt)
		}
	}
}

func (r *Relay) deliver(ctx context.Context, evt ports.SessionEvent) {
	for attempt := 1; attempt <= maxPublishAttempts; attempt++ {
		pubCtx, cancel := context.WithTimeout(context.Background(), eventPublishTimeout)
		err := r.sink.PublishSessionEvent(pubCtx, evt)
		cancel()

		if err == nil {
			r.mu.Lock()
			r.lastProcessed = time.Now()
			r.mu.Unlock()
			return
		}

		log.Printf("event relay: publish %s failed (attempt %d/%d): %v", evt.Kind, attempt, maxPublishAttempts, err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(retryBackoff):
		}
	}
	log.Printf("event relay: abandoning %s event after %d attempts", evt.Kind, maxPublishAttempts)
}

func (r *Relay) drain() {
	deadline := time.Now().Add(drainTimeout)
	for time.Now().Before(deadline) {
		select {
		case evt := <-r.queue:
			pubCtx, cancel := context.WithTimeout(context.Background(), time.Until(deadline))
			if err := r.sink.PublishSessionEvent(pubCtx, evt); err != nil {
				log.Printf("event relay: drain publish failed: %v", err)
			}
			cancel()
		default:
			return
		}
	}
}

func (r *Relay) setRunning(v bool) {
	r.mu.Lock()
	r.running = v
	r.mu.Unlock()
}
