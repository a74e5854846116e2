package websocket

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kellan/jobwire/internal/core/domain"
)

// Connection is the registry's view of one live peer: its identity, its
// joined rooms, and a bounded outbound buffer. The identity is fixed at
// registration; room membership is mutated only by the Registry.
type Connection struct {
	// ID is the opaque connection id, unique for the registry's lifetime.
	ID uuid.UUID

	identity domain.Identity

	// send carries serialized envelopes to the write pump. Closed exactly
	// once, by Deregister.
	send chan []byte

	closeOnce sync.Once

	// mu protects rooms and closed.
	mu     sync.RWMutex
	rooms  map[string]struct{}
	closed bool
}

func newConnection(identity domain.Identity, sendBuffer int) *Connection {
	return &Connection{
		ID:       uuid.New(),
		identity: identity,
		send:     make(chan []byte, sendBuffer),
		rooms:    make(map[string]struct{}),
	}
}

// Identity returns the identity attached at registration time.
func (c *Connection) Identity() domain.Identity {
	return c.identity
}

// Rooms returns a copy of the connection's joined-room set.
func (c *Connection) Rooms() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rooms := make([]string, 0, len(c.rooms))
	for room := range c.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// InRoom reports whether the connection has joined the given room.
func (c *Connection) InRoom(room string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.rooms[room]
	return ok
}

func (c *Connection) addRoom(room string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[room] = struct{}{}
}

func (c *Connection) removeRoom(room string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rooms, room)
}

// jobRoomCount counts the ad-hoc rooms the connection has joined.
func (c *Connection) jobRoomCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for room := range c.rooms {
		if domain.IsJobRoom(room) {
			n++
		}
	}
	return n
}

// trySend enqueues a payload without blocking. It returns false when the
// buffer is full or the connection is already closed; the caller treats
// both as a skipped delivery.
func (c *Connection) trySend(payload []byte) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// closeSend closes the outbound channel exactly once, even if a read-error
// path and an explicit close race.
func (c *Connection) closeSend() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()
	})
}
