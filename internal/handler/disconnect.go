package handler

import (
	"context"

	"github.com/goevery/coderelay/internal/event"
	"github.com/goevery/coderelay/internal/room"
)

type DisconnectHandlerInterface interface {
	Handle(ctx context.Context, sessionId string) []event.Notification
}

type DisconnectHandler struct {
	registry room.Registry
}

func NewDisconnectHandler(
	registry room.Registry,
) *DisconnectHandler {
	return &DisconnectHandler{
		registry,
	}
}

func (h *DisconnectHandler) Handle(ctx context.Context, sessionId string) []event.Notification {
	var notifications []event.Notification

	for _, departure := range h.registry.DisconnectAll(sessionId) {
		notifications = append(notifications, departureNotifications(departure)...)
	}

	return notifications
}
