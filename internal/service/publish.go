package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/resource-service/internal/events"
)

// publishEvent stamps and hands off an event. Delivery failures never fail the caller.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_ = dispatcher.Publish(ctx, event)
}
