package messaging

import (
	"context"
	"sync"
	"time"

	"blog-backend/internal/domain"
	"blog-backend/pkg/observability"

	"go.uber.org/zap"
)

const (
	defaultQueueSize      = 64
	defaultPublishTimeout = 10 * time.Second
)

// Dispatcher decouples event publication from the mutation that produced
// the event. Dispatch enqueues and returns immediately; a worker drains the
// queue and publishes with its own deadline. Delivery is at-most-once: a
// full queue drops the event, and publish failures are logged and counted
// but never reach the caller.
type Dispatcher struct {
	publisher Publisher
	queue     chan domain.NotificationEvent
	timeout   time.Duration
	logger    *zap.Logger

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewDispatcher starts a dispatcher over the given publisher. queueSize <= 0
// selects the default bound.
func NewDispatcher(publisher Publisher, queueSize int, logger *zap.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	d := &Dispatcher{
		publisher: publisher,
		queue:     make(chan domain.NotificationEvent, queueSize),
		timeout:   defaultPublishTimeout,
		logger:    logger,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Dispatch enqueues an event for best-effort publication. It never blocks:
// when the queue is full the event is dropped and the drop is recorded.
func (d *Dispatcher) Dispatch(event domain.NotificationEvent) {
	select {
	case d.queue <- event:
	default:
		observability.EventsDropped.Inc()
		d.logger.Warn("notification queue full, dropping event",
			zap.String("eventType", event.EventType),
		)
	}
}

// Close stops accepting events, drains the queue, and waits for the worker.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for event := range d.queue {
		d.publish(event)
	}
}

func (d *Dispatcher) publish(event domain.NotificationEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.publisher.Publish(ctx, event); err != nil {
		observability.EventsPublished.WithLabelValues(event.EventType, "error").Inc()
		d.logger.Error("failed to publish notification event",
			zap.String("eventType", event.EventType),
			zap.Error(err),
		)
		return
	}
	observability.EventsPublished.WithLabelValues(event.EventType, "ok").Inc()
	d.logger.Info("published notification event",
		zap.String("eventType", event.EventType),
	)
}
