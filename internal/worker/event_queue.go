package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/resource-service/internal/events"
)

type queuedEvent struct {
	ctx   context.Context
	event events.Event
}

// AsyncDispatcher queues published events and hands them to the wrapped
// dispatcher from a single goroutine. A full queue drops the event.
type AsyncDispatcher struct {
	next   events.Dispatcher
	logger *zap.Logger
	queue  chan queuedEvent

	mu      sync.RWMutex
	closed  bool
	started bool
	done    chan struct{}
}

// NewAsyncDispatcher wraps next with a queue of the given capacity.
func NewAsyncDispatcher(next events.Dispatcher, size int, logger *zap.Logger) *AsyncDispatcher {
	if size <= 0 {
		size = 1
	}
	return &AsyncDispatcher{
		next:   next,
		logger: logger,
		queue:  make(chan queuedEvent, size),
		done:   make(chan struct{}),
	}
}

// Publish enqueues the event without blocking. The event outlives the caller's
// cancellation but keeps its values.
func (d *AsyncDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn("event dropped after shutdown", zap.String("event_type", string(event.Type)))
		return nil
	}
	select {
	case d.queue <- queuedEvent{ctx: context.WithoutCancel(ctx), event: event}:
	default:
		d.logger.Warn("event queue full, dropping event",
			zap.String("event_type", string(event.Type)),
			zap.Int64("resource_id", event.ResourceID))
	}
	return nil
}

// Subscribe registers handler on the wrapped dispatcher.
func (d *AsyncDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {
	d.next.Subscribe(eventType, handler)
}

// Start launches the delivery goroutine. Calling it twice has no effect.
func (d *AsyncDispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true
	go d.run()
}

func (d *AsyncDispatcher) run() {
	defer close(d.done)
	for item := range d.queue {
		if err := d.next.Publish(item.ctx, item.event); err != nil {
			d.logger.Error("event handler failed",
				zap.String("event_id", item.event.ID),
				zap.String("event_type", string(item.event.Type)),
				zap.Error(err))
		}
	}
}

// Stop refuses new events and waits until queued ones are delivered or ctx ends.
func (d *AsyncDispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		return nil
	}
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
