package broadcaster

import (
	"context"

	"github.com/goevery/coderelay/internal/event"
	"github.com/goevery/coderelay/internal/room"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Dispatcher turns session lifecycle events and inbound frames into
// notifications. It is only ever called from the hub loop.
//
//go:generate mockery --name Dispatcher --inpackage --structname MockDispatcher --filename mock_dispatcher.go
type Dispatcher interface {
	Connect(ctx context.Context, sessionId string) []event.Notification
	Dispatch(ctx context.Context, sessionId string, frame []byte) []event.Notification
	Disconnect(ctx context.Context, sessionId string) []event.Notification
}

type MemberLister interface {
	Members(roomId string) []room.Member
}

type hubEventKind int

const (
	hubEventConnect hubEventKind = iota
	hubEventFrame
	hubEventDisconnect
)

type hubEvent struct {
	kind       hubEventKind
	connection *Connection
	sessionId  string
	frame      []byte
}

// Hub serializes every session event through a single loop. One event is
// fully dispatched and its notifications enqueued before the next one starts,
// so room mutations and the fan-out reflecting them never interleave.
type Hub struct {
	logger     *zap.Logger
	dispatcher Dispatcher
	members    MemberLister

	connections map[string]*Connection
	events      chan hubEvent
	done        chan struct{}
}

func NewHub(
	logger *zap.Logger,
	dispatcher Dispatcher,
	members MemberLister,
) *Hub {
	return &Hub{
		logger:      logger,
		dispatcher:  dispatcher,
		members:     members,
		connections: make(map[string]*Connection),
		events:      make(chan hubEvent, 256),
		done:        make(chan struct{}),
	}
}

// Run processes events until ctx is cancelled, then closes every remaining
// connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()

			return
		case e := <-h.events:
			h.process(ctx, e)
		}
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) Register(connection *Connection) bool {
	return h.submit(hubEvent{kind: hubEventConnect, connection: connection, sessionId: connection.Id})
}

func (h *Hub) Receive(sessionId string, frame []byte) bool {
	return h.submit(hubEvent{kind: hubEventFrame, sessionId: sessionId, frame: frame})
}

func (h *Hub) Unregister(sessionId string) bool {
	return h.submit(hubEvent{kind: hubEventDisconnect, sessionId: sessionId})
}

func (h *Hub) submit(e hubEvent) bool {
	select {
	case <-h.done:
		return false
	default:
	}

	select {
	case h.events <- e:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) process(ctx context.Context, e hubEvent) {
	switch e.kind {
	case hubEventConnect:
		h.connections[e.sessionId] = e.connection

		h.logger.Debug("session connected",
			zap.String("sessionId", e.sessionId),
			zap.Int("sessions", len(h.connections)))

		h.deliver(h.dispatcher.Connect(ctx, e.sessionId))
	case hubEventFrame:
		if _, ok := h.connections[e.sessionId]; !ok {
			h.logger.Warn("frame from unknown session dropped", zap.String("sessionId", e.sessionId))

			return
		}

		h.deliver(h.dispatcher.Dispatch(ctx, e.sessionId, e.frame))
	case hubEventDisconnect:
		connection, ok := h.connections[e.sessionId]
		if !ok {
			return
		}

		delete(h.connections, e.sessionId)
		close(connection.Send)

		h.logger.Debug("session disconnected",
			zap.String("sessionId", e.sessionId),
			zap.Int("sessions", len(h.connections)))

		h.deliver(h.dispatcher.Disconnect(ctx, e.sessionId))
	}
}

// deliver enqueues each notification on its recipients' send queues without
// blocking. A full queue drops the frame for that recipient only.
func (h *Hub) deliver(notifications []event.Notification) {
	for _, notification := range notifications {
		data, err := notification.Encode()
		if err != nil {
			h.logger.Error("failed to encode notification",
				zap.String("event", string(notification.Event)),
				zap.Error(err))

			continue
		}

		for _, sessionId := range h.resolve(notification.Target) {
			connection, ok := h.connections[sessionId]
			if !ok {
				continue
			}

			select {
			case connection.Send <- data:
			default:
				h.logger.Warn("connection send queue is full, dropping frame",
					zap.String("sessionId", sessionId),
					zap.String("event", string(notification.Event)))
			}
		}
	}
}

func (h *Hub) resolve(target event.Target) []string {
	switch target.Kind {
	case event.TargetSession:
		return []string{target.SessionId}
	case event.TargetRoom:
		return lo.Map(h.members.Members(target.RoomId), func(m room.Member, _ int) string {
			return m.SessionId
		})
	case event.TargetRoomExcept:
		return lo.FilterMap(h.members.Members(target.RoomId), func(m room.Member, _ int) (string, bool) {
			return m.SessionId, m.SessionId != target.SessionId
		})
	default:
		return nil
	}
}

func (h *Hub) closeAll() {
	for sessionId, connection := range h.connections {
		close(connection.Send)
		delete(h.connections, sessionId)
	}

	h.logger.Info("hub stopped")
}
