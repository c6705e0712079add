package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestPublishInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())
	done := make(chan struct{})

	var got Event
	d.Subscribe(EventUserVerified, func(_ context.Context, event Event) error {
		got = event
		close(done)
		return nil
	})

	d.Publish(context.Background(), Event{ID: "evt-1", Type: EventUserVerified, ActorID: 7})
	waitFor(t, done)
	assert.Equal(t, "evt-1", got.ID)
	assert.EqualValues(t, 7, got.ActorID)
}

func TestPublishIgnoresUnsubscribedTypes(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())
	invoked := make(chan struct{}, 1)
	d.Subscribe(EventUserVerified, func(context.Context, Event) error {
		invoked <- struct{}{}
		return nil
	})

	d.Publish(context.Background(), Event{Type: EventPasswordChanged})

	select {
	case <-invoked:
		t.Fatal("handler invoked for foreign event type")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPublishSurvivesFailingAndPanickingHandlers(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())
	done := make(chan struct{})

	d.Subscribe(EventContactApproved, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventContactApproved, func(context.Context, Event) error {
		close(done)
		return nil
	})

	d.Publish(context.Background(), Event{Type: EventContactApproved})
	waitFor(t, done)

	// a panicking handler must not take the process down
	d.Subscribe(EventUserVerified, func(context.Context, Event) error {
		panic("handler panic")
	})
	require.NotPanics(t, func() {
		d.Publish(context.Background(), Event{Type: EventUserVerified})
		time.Sleep(50 * time.Millisecond)
	})
}
