package handler

import (
	"context"
	"testing"

	"github.com/goevery/coderelay/internal/event"
	"github.com/goevery/coderelay/internal/room"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestJoinHandler(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	t.Run("notifies room and joiner", func(t *testing.T) {
		registry := room.NewInMemoryRegistry(logger)
		joinHandler := NewJoinHandler(registry)

		joinHandler.Handle(ctx, "s1", event.JoinRoomRequest{RoomId: "room1", Username: "Alice"})
		notifications := joinHandler.Handle(ctx, "s2", event.JoinRoomRequest{RoomId: "room1", Username: "Bob"})

		assert.Equal(t, []event.Notification{
			{
				Target:  event.ToRoom("room1"),
				Event:   event.UserJoined,
				Payload: event.UserJoinedPayload{Username: "Bob", UserCount: 2},
			},
			{
				Target:  event.ToRoom("room1"),
				Event:   event.UserCountUpdate,
				Payload: event.UserCountUpdatePayload{UserCount: 2},
			},
			{
				Target:  event.ToSession("s2"),
				Event:   event.RoomInfo,
				Payload: event.RoomInfoPayload{UserCount: 2, RoomId: "room1"},
			},
		}, notifications)
	})

	t.Run("duplicate join keeps the count", func(t *testing.T) {
		registry := room.NewInMemoryRegistry(logger)
		joinHandler := NewJoinHandler(registry)

		joinHandler.Handle(ctx, "s1", event.JoinRoomRequest{RoomId: "room1", Username: "a"})
		notifications := joinHandler.Handle(ctx, "s1", event.JoinRoomRequest{RoomId: "room1", Username: "a"})

		assert.Equal(t, event.UserJoinedPayload{Username: "a", UserCount: 1}, notifications[0].Payload)
		assert.Len(t, registry.Members("room1"), 1)
	})
}
