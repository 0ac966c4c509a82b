package event

import "encoding/json"

type TargetKind int

const (
	TargetSession TargetKind = iota
	TargetRoom
	TargetRoomExcept
)

// Target selects the audience of a notification. Room targets are resolved
// against the room membership at delivery time.
type Target struct {
	Kind      TargetKind
	RoomId    string
	SessionId string
}

func ToSession(sessionId string) Target {
	return Target{Kind: TargetSession, SessionId: sessionId}
}

func ToRoom(roomId string) Target {
	return Target{Kind: TargetRoom, RoomId: roomId}
}

func ToRoomExcept(roomId string, sessionId string) Target {
	return Target{Kind: TargetRoomExcept, RoomId: roomId, SessionId: sessionId}
}

// Notification is one outbound event, computed by a handler and delivered by
// the hub.
type Notification struct {
	Target  Target
	Event   Name
	Payload any
}

type outboundFrame struct {
	Event Name `json:"event"`
	Data  any  `json:"data"`
}

func (n Notification) Encode() ([]byte, error) {
	return json.Marshal(outboundFrame{
		Event: n.Event,
		Data:  n.Payload,
	})
}
