package handler

import (
	"context"
	"testing"
	"time"

	"github.com/goevery/coderelay/internal/event"
	"github.com/goevery/coderelay/internal/room"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMessageHandler(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()
	sentAt := time.UnixMilli(1700000000000)

	registry := room.NewInMemoryRegistry(logger)
	registry.Join("room1", "s1", "Alice")
	registry.Join("room1", "s2", "Bob")

	messageHandler := NewMessageHandler(registry)
	messageHandler.now = func() time.Time { return sentAt }

	t.Run("relays to the room except the sender", func(t *testing.T) {
		notifications := messageHandler.Handle(ctx, "s2", event.SendMessageRequest{
			RoomId:   "room1",
			Message:  "hi",
			Code:     "print(1)",
			Language: "python",
		})

		require.Len(t, notifications, 1)
		assert.Equal(t, event.ToRoomExcept("room1", "s2"), notifications[0].Target)
		assert.Equal(t, event.ReceiveMessage, notifications[0].Event)
		assert.Equal(t, event.ReceiveMessagePayload{
			Username:  "Bob",
			Message:   "hi",
			Code:      "print(1)",
			Language:  "python",
			Timestamp: 1700000000000,
			SenderId:  "s2",
		}, notifications[0].Payload)
	})

	t.Run("unknown sender is anonymous", func(t *testing.T) {
		notifications := messageHandler.Handle(ctx, "s3", event.SendMessageRequest{RoomId: "room1", Message: "hello"})

		require.Len(t, notifications, 1)
		payload := notifications[0].Payload.(event.ReceiveMessagePayload)
		assert.Equal(t, room.AnonymousUsername, payload.Username)
		assert.Equal(t, "s3", payload.SenderId)
	})

	t.Run("unknown room still relays", func(t *testing.T) {
		notifications := messageHandler.Handle(ctx, "s1", event.SendMessageRequest{RoomId: "nowhere"})

		require.Len(t, notifications, 1)
		assert.Equal(t, event.ToRoomExcept("nowhere", "s1"), notifications[0].Target)
		assert.Equal(t, room.AnonymousUsername, notifications[0].Payload.(event.ReceiveMessagePayload).Username)
	})
}
