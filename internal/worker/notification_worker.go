package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/facility-complaints/internal/events"
	"github.com/spec-kit/facility-complaints/internal/service"
)

const defaultQueueSize = 256

// NotificationWorker decouples event delivery from the request path. Published events are
// queued and handed to the wrapped dispatcher by a single background goroutine.
type NotificationWorker struct {
	inner  events.Dispatcher
	logger *zap.Logger
	queue  chan queued
	wg     sync.WaitGroup

	// mu guards stopped; the queue is closed only while holding it exclusively.
	mu      sync.RWMutex
	stopped bool
}

type queued struct {
	ctx   context.Context
	event events.Event
}

// StartNotificationWorker registers notification handlers on inner and starts delivering.
func StartNotificationWorker(inner events.Dispatcher, notifications *service.NotificationService, logger *zap.Logger) *NotificationWorker {
	if notifications != nil {
		notifications.RegisterHandlers()
	}
	w := &NotificationWorker{
		inner:  inner,
		logger: logger,
		queue:  make(chan queued, defaultQueueSize),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *NotificationWorker) run() {
	defer w.wg.Done()
	for item := range w.queue {
		if err := w.inner.Publish(item.ctx, item.event); err != nil {
			w.logger.Warn("event delivery failed",
				zap.String("event_type", string(item.event.Type)),
				zap.String("ticket_id", item.event.TicketID),
				zap.Error(err))
		}
	}
}

// Publish enqueues event. The request context is detached so delivery outlives the request.
// When the queue is full or the worker has stopped the event is delivered synchronously.
func (w *NotificationWorker) Publish(ctx context.Context, event events.Event) error {
	item := queued{ctx: context.WithoutCancel(ctx), event: event}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return w.inner.Publish(item.ctx, event)
	}
	select {
	case w.queue <- item:
		return nil
	default:
		return w.inner.Publish(item.ctx, event)
	}
}

// Subscribe registers handler on the wrapped dispatcher.
func (w *NotificationWorker) Subscribe(eventType events.EventType, handler events.EventHandler) {
	w.inner.Subscribe(eventType, handler)
}

// Stop drains the queue and waits for in-flight deliveries, or for ctx to expire.
func (w *NotificationWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.queue)
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
