package handler

import (
	"context"

	"github.com/goevery/coderelay/internal/event"
	"github.com/goevery/coderelay/internal/room"
)

type LeaveHandlerInterface interface {
	Handle(ctx context.Context, sessionId string, req event.LeaveRoomRequest) []event.Notification
}

type LeaveHandler struct {
	registry room.Registry
}

func NewLeaveHandler(
	registry room.Registry,
) *LeaveHandler {
	return &LeaveHandler{
		registry,
	}
}

func (h *LeaveHandler) Handle(ctx context.Context, sessionId string, req event.LeaveRoomRequest) []event.Notification {
	departure, ok := h.registry.Leave(req.RoomId, sessionId)
	if !ok {
		return nil
	}

	return departureNotifications(departure)
}

// departureNotifications tells the remaining members of a room that someone
// left. An emptied room has no audience.
func departureNotifications(departure room.Departure) []event.Notification {
	if departure.UserCount == 0 {
		return nil
	}

	return []event.Notification{
		{
			Target: event.ToRoom(departure.RoomId),
			Event:  event.UserLeft,
			Payload: event.UserLeftPayload{
				Username:  departure.Username,
				UserCount: departure.UserCount,
			},
		},
		{
			Target:  event.ToRoom(departure.RoomId),
			Event:   event.UserCountUpdate,
			Payload: event.UserCountUpdatePayload{UserCount: departure.UserCount},
		},
	}
}
