package event

import "encoding/json"

type Name string

const (
	JoinRoom    Name = "joinRoom"
	SendMessage Name = "sendMessage"
	LeaveRoom   Name = "leaveRoom"

	Connected       Name = "connected"
	UserJoined      Name = "userJoined"
	UserCountUpdate Name = "userCountUpdate"
	RoomInfo        Name = "roomInfo"
	ReceiveMessage  Name = "receiveMessage"
	UserLeft        Name = "userLeft"
	Error           Name = "error"
)

// Frame is the envelope of every websocket text message.
type Frame struct {
	Event Name             `json:"event" validate:"required"`
	Data  *json.RawMessage `json:"data,omitempty"`
}

type JoinRoomRequest struct {
	RoomId   string `json:"roomId"`
	Username string `json:"username"`
}

type SendMessageRequest struct {
	RoomId   string `json:"roomId"`
	Message  string `json:"message"`
	Code     string `json:"code"`
	Language string `json:"language"`
}

type LeaveRoomRequest struct {
	RoomId string `json:"roomId"`
}

type ConnectedPayload struct {
	SessionId string `json:"sessionId"`
}

type UserJoinedPayload struct {
	Username  string `json:"username"`
	UserCount int    `json:"userCount"`
}

type UserCountUpdatePayload struct {
	UserCount int `json:"userCount"`
}

type RoomInfoPayload struct {
	UserCount int    `json:"userCount"`
	RoomId    string `json:"roomId"`
}

type ReceiveMessagePayload struct {
	Username string `json:"username"`
	Message  string `json:"message"`
	Code     string `json:"code"`
	Language string `json:"language"`
	// Unix milliseconds
	Timestamp int64  `json:"timestamp"`
	SenderId  string `json:"senderId"`
}

type UserLeftPayload struct {
	Username  string `json:"username"`
	UserCount int    `json:"userCount"`
}
