// Package messaging publishes notification events to the external bus.
// Publication is a side channel: it runs off the request path and its
// failures are logged and counted, never surfaced to the caller.
package messaging

import (
	"context"

	"blog-backend/internal/domain"
)

// Publisher hands a serialized notification event to the external bus.
type Publisher interface {
	Publish(ctx context.Context, event domain.NotificationEvent) error
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, event domain.NotificationEvent) error

// Publish calls f.
func (f PublisherFunc) Publish(ctx context.Context, event domain.NotificationEvent) error {
	return f(ctx, event)
}
