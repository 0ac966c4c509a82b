package handler

import (
	"context"
	"testing"

	"github.com/goevery/coderelay/internal/event"
	"github.com/goevery/coderelay/internal/room"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDisconnectHandler(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	registry := room.NewInMemoryRegistry(logger)
	registry.Join("r1", "s", "Alice")
	registry.Join("r1", "t", "Bob")
	registry.Join("r2", "s", "Alice")
	registry.Join("r2", "u", "Carol")
	registry.Join("r3", "s", "Alice")

	notifications := NewDisconnectHandler(registry).Handle(ctx, "s")

	assert.Equal(t, []event.Notification{
		{
			Target:  event.ToRoom("r1"),
			Event:   event.UserLeft,
			Payload: event.UserLeftPayload{Username: "Alice", UserCount: 1},
		},
		{
			Target:  event.ToRoom("r1"),
			Event:   event.UserCountUpdate,
			Payload: event.UserCountUpdatePayload{UserCount: 1},
		},
		{
			Target:  event.ToRoom("r2"),
			Event:   event.UserLeft,
			Payload: event.UserLeftPayload{Username: "Alice", UserCount: 1},
		},
		{
			Target:  event.ToRoom("r2"),
			Event:   event.UserCountUpdate,
			Payload: event.UserCountUpdatePayload{UserCount: 1},
		},
	}, notifications)

	assert.Equal(t, 2, registry.RoomCount())
	assert.Empty(t, NewDisconnectHandler(registry).Handle(ctx, "s"))
}
