package broadcaster

// Connection is the hub's view of one client session. Send carries encoded
// frames to the transport writer and is closed by the hub when the session
// ends.
type Connection struct {
	Id   string
	Send chan []byte
}

func NewConnection(id string, bufferSize int) *Connection {
	return &Connection{
		Id:   id,
		Send: make(chan []byte, bufferSize),
	}
}
