package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesAllSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var calls int
	handler := func(context.Context, Event) error {
		calls++
		return nil
	}
	dispatcher.Subscribe(EventUserRegistered, handler)
	dispatcher.Subscribe(EventUserRegistered, handler)
	dispatcher.Subscribe(EventUserLoggedIn, handler)

	err := dispatcher.Publish(context.Background(), Event{Type: EventUserRegistered})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDispatcher_FailingHandlerDoesNotStopOthers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	boom := errors.New("boom")
	var reached bool
	dispatcher.Subscribe(EventUserLoggedIn, func(context.Context, Event) error {
		return boom
	})
	dispatcher.Subscribe(EventUserLoggedIn, func(context.Context, Event) error {
		reached = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventUserLoggedIn})
	assert.ErrorIs(t, err, boom)
	assert.True(t, reached)
}

func TestDispatcher_PublishWithoutSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	assert.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventPasswordChanged}))
}
