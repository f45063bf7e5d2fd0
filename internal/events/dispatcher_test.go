package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherPublishInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []Event
	d.Subscribe(EventRedemptionCreated, func(_ context.Context, e Event) error {
		seen = append(seen, e)
		return nil
	})

	event := Event{
		ID:        "evt-1",
		Type:      EventRedemptionCreated,
		TeamName:  "DAUNTLESS",
		Timestamp: time.Now(),
	}
	require.NoError(t, d.Publish(context.Background(), event))

	require.Len(t, seen, 1)
	assert.Equal(t, "DAUNTLESS", seen[0].TeamName)
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventRedemptionCreated, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventRedemptionCreated, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventRedemptionCreated}))
	assert.True(t, called)
}

func TestDispatcherIgnoresOtherEventTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventImportCompleted, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventRedemptionCreated}))
	assert.False(t, called)
}
