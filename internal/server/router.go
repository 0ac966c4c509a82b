package server

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goevery/coderelay/internal/event"
	"github.com/goevery/coderelay/internal/handler"
	"github.com/goevery/coderelay/internal/ierr"
	"github.com/goevery/coderelay/internal/room"
	"go.uber.org/zap"
)

// Router decodes inbound frames, applies ingress defaults and hands them to
// the matching handler. Decoding faults are reported to the sender as error
// frames and never end the session.
type Router struct {
	logger   *zap.Logger
	validate *validator.Validate

	joinHandler       handler.JoinHandlerInterface
	messageHandler    handler.MessageHandlerInterface
	leaveHandler      handler.LeaveHandlerInterface
	disconnectHandler handler.DisconnectHandlerInterface
}

func NewRouter(
	logger *zap.Logger,
	joinHandler handler.JoinHandlerInterface,
	messageHandler handler.MessageHandlerInterface,
	leaveHandler handler.LeaveHandlerInterface,
	disconnectHandler handler.DisconnectHandlerInterface,
) *Router {
	return &Router{
		logger:            logger,
		validate:          validator.New(validator.WithRequiredStructEnabled()),
		joinHandler:       joinHandler,
		messageHandler:    messageHandler,
		leaveHandler:      leaveHandler,
		disconnectHandler: disconnectHandler,
	}
}

func (r *Router) Connect(ctx context.Context, sessionId string) []event.Notification {
	return []event.Notification{
		{
			Target:  event.ToSession(sessionId),
			Event:   event.Connected,
			Payload: event.ConnectedPayload{SessionId: sessionId},
		},
	}
}

func (r *Router) Dispatch(ctx context.Context, sessionId string, frame []byte) []event.Notification {
	notifications, err := r.Handle(ctx, sessionId, frame)
	if err != nil {
		r.logger.Debug("rejected inbound frame",
			zap.String("sessionId", sessionId),
			zap.Error(err))

		return []event.Notification{
			{
				Target:  event.ToSession(sessionId),
				Event:   event.Error,
				Payload: r.mapError(err),
			},
		}
	}

	return notifications
}

func (r *Router) Disconnect(ctx context.Context, sessionId string) []event.Notification {
	return r.disconnectHandler.Handle(ctx, sessionId)
}

func (r *Router) Handle(ctx context.Context, sessionId string, rawFrame []byte) ([]event.Notification, error) {
	frame, err := r.Decode(rawFrame)
	if err != nil {
		return nil, err
	}

	fields := payloadFields(frame.Data)

	switch frame.Event {
	case event.JoinRoom:
		return r.joinHandler.Handle(ctx, sessionId, decodeJoinRoom(fields)), nil
	case event.SendMessage:
		return r.messageHandler.Handle(ctx, sessionId, decodeSendMessage(fields)), nil
	case event.LeaveRoom:
		return r.leaveHandler.Handle(ctx, sessionId, decodeLeaveRoom(fields)), nil
	default:
		return nil, ierr.New(ierr.ErrorCodeNotFound, errors.New("event not found: "+string(frame.Event)))
	}
}

// Decode parses the frame envelope. Only an unparseable envelope or a missing
// event name is an error; payload fields are decoded leniently afterwards.
func (r *Router) Decode(rawFrame []byte) (event.Frame, error) {
	var frame event.Frame
	if err := json.Unmarshal(rawFrame, &frame); err != nil {
		return event.Frame{}, ierr.New(ierr.ErrorCodeInvalidArgument, errors.New("invalid frame: "+err.Error()))
	}

	if err := r.validate.Struct(frame); err != nil {
		return event.Frame{}, ierr.New(ierr.ErrorCodeInvalidArgument, errors.New("invalid frame: missing event"))
	}

	return frame, nil
}

func (r *Router) mapError(err error) ierr.Error {
	var handlerErr ierr.Error
	if errors.As(err, &handlerErr) {
		return handlerErr
	}

	r.logger.Error("error in frame handler", zap.Error(err))

	return ierr.New(ierr.ErrorCodeInternal, errors.New("internal error"))
}

func decodeJoinRoom(fields map[string]json.RawMessage) event.JoinRoomRequest {
	req := event.JoinRoomRequest{
		RoomId:   stringField(fields, "roomId"),
		Username: stringField(fields, "username"),
	}

	if req.Username == "" {
		req.Username = room.AnonymousUsername
	}

	return req
}

func decodeSendMessage(fields map[string]json.RawMessage) event.SendMessageRequest {
	return event.SendMessageRequest{
		RoomId:   stringField(fields, "roomId"),
		Message:  stringField(fields, "message"),
		Code:     stringField(fields, "code"),
		Language: stringField(fields, "language"),
	}
}

func decodeLeaveRoom(fields map[string]json.RawMessage) event.LeaveRoomRequest {
	return event.LeaveRoomRequest{
		RoomId: stringField(fields, "roomId"),
	}
}

// payloadFields splits the data object into its raw fields. Missing data, or
// data that is not an object, yields no fields.
func payloadFields(data *json.RawMessage) map[string]json.RawMessage {
	if data == nil {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(*data, &fields); err != nil {
		return nil
	}

	return fields
}

// stringField reads a field as text. Numbers and booleans keep their literal
// form so they stay usable as room keys; any other value is empty.
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
