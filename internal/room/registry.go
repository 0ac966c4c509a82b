package room

import (
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const AnonymousUsername = "Anonymous"

type Member struct {
	SessionId string
	Username  string
}

// Departure describes a membership that was removed from a room.
type Departure struct {
	RoomId    string
	Username  string
	UserCount int
}

// Registry is the authoritative mapping of rooms to their members.
//
// A Registry is not safe for concurrent use. It is owned by the hub dispatch
// loop, which serializes every mutation together with the fan-out that
// reflects it.
type Registry interface {
	Join(roomId string, sessionId string, username string) int
	Leave(roomId string, sessionId string) (Departure, bool)
	DisconnectAll(sessionId string) []Departure
	LookupUsername(roomId string, sessionId string) (string, bool)
	Members(roomId string) []Member
}

type InMemoryRegistry struct {
	logger *zap.Logger

	membersByRoom  map[string][]Member
	roomsBySession map[string]map[string]struct{}
	// rooms in creation order, used for the disconnect sweep
	roomOrder []string
}

func NewInMemoryRegistry(
	logger *zap.Logger,
) *InMemoryRegistry {
	return &InMemoryRegistry{
		logger:         logger,
		membersByRoom:  make(map[string][]Member),
		roomsBySession: make(map[string]map[string]struct{}),
	}
}

// Join adds the session to the room, creating the room if needed, and returns
// the resulting member count. Joining twice is a no-op.
func (r *InMemoryRegistry) Join(roomId string, sessionId string, username string) int {
	members, ok := r.membersByRoom[roomId]
	if !ok {
		r.roomOrder = append(r.roomOrder, roomId)

		r.logger.Debug("room created", zap.String("roomId", roomId))
	}

	if lo.ContainsBy(members, isSession(sessionId)) {
		return len(members)
	}

	members = append(members, Member{
		SessionId: sessionId,
		Username:  username,
	})
	r.membersByRoom[roomId] = members

	if _, ok := r.roomsBySession[sessionId]; !ok {
		r.roomsBySession[sessionId] = make(map[string]struct{})
	}

	r.roomsBySession[sessionId][roomId] = struct{}{}

	return len(members)
}

func (r *InMemoryRegistry) Leave(roomId string, sessionId string) (Departure, bool) {
	sessionRooms, ok := r.roomsBySession[sessionId]
	if !ok {
		return Departure{}, false
	}

	if _, ok := sessionRooms[roomId]; !ok {
		return Departure{}, false
	}

	delete(sessionRooms, roomId)
	if len(sessionRooms) == 0 {
		delete(r.roomsBySession, sessionId)
	}

	return r.removeMember(roomId, sessionId)
}

// DisconnectAll removes the session from every room it belongs to. Departures
// are reported in room creation order.
func (r *InMemoryRegistry) DisconnectAll(sessionId string) []Departure {
	sessionRooms, ok := r.roomsBySession[sessionId]
	if !ok {
		return nil
	}

	delete(r.roomsBySession, sessionId)

	affectedRooms := lo.Filter(r.roomOrder, func(roomId string, _ int) bool {
		_, ok := sessionRooms[roomId]
		return ok
	})

	departures := make([]Departure, 0, len(affectedRooms))
	for _, roomId := range affectedRooms {
		if departure, ok := r.removeMember(roomId, sessionId); ok {
			departures = append(departures, departure)
		}
	}

	return departures
}

func (r *InMemoryRegistry) LookupUsername(roomId string, sessionId string) (string, bool) {
	member, ok := lo.Find(r.membersByRoom[roomId], isSession(sessionId))
	if !ok {
		return "", false
	}

	return member.Username, true
}

// Members returns a copy of the room's members in join order.
func (r *InMemoryRegistry) Members(roomId string) []Member {
	members, ok := r.membersByRoom[roomId]
	if !ok {
		return nil
	}

	return append([]Member(nil), members...)
}

func (r *InMemoryRegistry) RoomCount() int {
	return len(r.membersByRoom)
}

func (r *InMemoryRegistry) removeMember(roomId string, sessionId string) (Departure, bool) {
	members := r.membersByRoom[roomId]

	member, index, ok := lo.FindIndexOf(members, isSession(sessionId))
	if !ok {
		return Departure{}, false
	}

	members = append(members[:index:index], members[index+1:]...)

	if len(members) == 0 {
		delete(r.membersByRoom, roomId)
		r.roomOrder = lo.Without(r.roomOrder, roomId)

		r.logger.Debug("room deleted", zap.String("roomId", roomId))
	} else {
		r.membersByRoom[roomId] = members
	}

	return Departure{
		RoomId:    roomId,
		Username:  member.Username,
		UserCount: len(members),
	}, true
}

func isSession(sessionId string) func(Member) bool {
	return func(m Member) bool {
		return m.SessionId == sessionId
	}
}
