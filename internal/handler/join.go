package handler

import (
	"context"

	"github.com/goevery/coderelay/internal/event"
	"github.com/goevery/coderelay/internal/room"
)

type JoinHandlerInterface interface {
	Handle(ctx context.Context, sessionId string, req event.JoinRoomRequest) []event.Notification
}

type JoinHandler struct {
	registry room.Registry
}

func NewJoinHandler(
	registry room.Registry,
) *JoinHandler {
	return &JoinHandler{
		registry,
	}
}

func (h *JoinHandler) Handle(ctx context.Context, sessionId string, req event.JoinRoomRequest) []event.Notification {
	userCount := h.registry.Join(req.RoomId, sessionId, req.Username)

	return []event.Notification{
		{
			Target: event.ToRoom(req.RoomId),
			Event:  event.UserJoined,
			Payload: event.UserJoinedPayload{
				Username:  req.Username,
				UserCount: userCount,
			},
		},
		{
			Target:  event.ToRoom(req.RoomId),
			Event:   event.UserCountUpdate,
			Payload: event.UserCountUpdatePayload{UserCount: userCount},
		},
		{
			Target: event.ToSession(sessionId),
			Event:  event.RoomInfo,
			Payload: event.RoomInfoPayload{
				UserCount: userCount,
				RoomId:    req.RoomId,
			},
		},
	}
}
