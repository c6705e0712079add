package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/campus-community/internal/events"
)

// publishEvent stamps and publishes a domain event. Nil dispatchers are
// tolerated so services stay constructible in isolation.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	dispatcher.Publish(ctx, event)
}
