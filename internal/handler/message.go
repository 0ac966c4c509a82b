package handler

import (
	"context"
	"time"

	"github.com/goevery/coderelay/internal/event"
	"github.com/goevery/coderelay/internal/room"
)

type MessageHandlerInterface interface {
	Handle(ctx context.Context, sessionId string, req event.SendMessageRequest) []event.Notification
}

type MessageHandler struct {
	registry room.Registry
	now      func() time.Time
}

func NewMessageHandler(
	registry room.Registry,
) *MessageHandler {
	return &MessageHandler{
		registry: registry,
		now:      time.Now,
	}
}

// Handle relays the message to every other member of the room. A sender that
// is not a member is relayed as anonymous.
func (h *MessageHandler) Handle(ctx context.Context, sessionId string, req event.SendMessageRequest) []event.Notification {
	username, ok := h.registry.LookupUsername(req.RoomId, sessionId)
	if !ok {
		username = room.AnonymousUsername
	}

	return []event.Notification{
		{
			Target: event.ToRoomExcept(req.RoomId, sessionId),
			Event:  event.ReceiveMessage,
			Payload: event.ReceiveMessagePayload{
				Username:  username,
				Message:   req.Message,
				Code:      req.Code,
				Language:  req.Language,
				Timestamp: h.now().UnixMilli(),
				SenderId:  sessionId,
			},
		},
	}
}
