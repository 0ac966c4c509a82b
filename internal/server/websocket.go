package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/goevery/coderelay/internal/broadcaster"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

type WebSocketServer struct {
	logger   *zap.Logger
	upgrader *websocket.Upgrader
	hub      *broadcaster.Hub

	sendBufferSize int
	maxFrameSize   int64
}

func NewWebSocketServer(
	logger *zap.Logger,
	upgrader *websocket.Upgrader,
	hub *broadcaster.Hub,
	sendBufferSize int,
	maxFrameSize int64,
) *WebSocketServer {
	return &WebSocketServer{
		logger,
		upgrader,
		hub,
		sendBufferSize,
		maxFrameSize,
	}
}

func (s *WebSocketServer) Register(router *mux.Router) {
	router.HandleFunc("/websocket", s.serve)
}

func (s *WebSocketServer) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	connection := broadcaster.NewConnection(gonanoid.Must(), s.sendBufferSize)
	logger := s.logger.With(
		zap.String("sessionId", connection.Id),
		zap.String("remoteAddr", r.RemoteAddr))

	if !s.hub.Register(connection) {
		logger.Warn("hub stopped, rejecting websocket connection")
		conn.Close()
		return
	}

	logger.Info("websocket connection established")

	go s.writePump(logger, conn, connection)
	s.readPump(logger, conn, connection)

	logger.Info("websocket connection closed")
}

// readPump forwards inbound frames to the hub until the transport fails or
// the peer stops answering pings. Either way the session is disconnected.
func (s *WebSocketServer) readPump(logger *zap.Logger, conn *websocket.Conn, connection *broadcaster.Connection) {
	defer func() {
		s.hub.Unregister(connection.Id)
		conn.Close()
	}()

	conn.SetReadLimit(s.maxFrameSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, frame, err := conn.ReadMessage()
		if err != nil {
			logReadError(logger, err)
			return
		}

		if messageType != websocket.TextMessage {
			logger.Debug("ignoring non-text frame", zap.Int("messageType", messageType))
			continue
		}

		if !s.hub.Receive(connection.Id, frame) {
			return
		}
	}
}

func (s *WebSocketServer) writePump(logger *zap.Logger, conn *websocket.Conn, connection *broadcaster.Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case frame, ok := <-connection.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				logger.Debug("failed to write frame", zap.Error(err))
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Debug("failed to write ping", zap.Error(err))
				return
			}
		}
	}
}

func logReadError(logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		logger.Warn("frame exceeded maximum size", zap.Error(err))
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived):
		logger.Debug("client closed connection", zap.Error(err))
	default:
		logger.Info("websocket read failed", zap.Error(err))
	}
}
