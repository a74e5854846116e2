package websocket

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/kellan/jobwire/internal/core/domain"
	apperrors "github.com/kellan/jobwire/internal/core/errors"
	"github.com/kellan/jobwire/internal/core/ports"
)

// Registry defaults. Both bounds are soft limits; see RegistryConfig.
const (
	DefaultMaxConnections = 8192
	DefaultMaxJobRooms    = 128
	DefaultSendBuffer     = 64
)

// RegistryConfig bounds the registry's growth.
type RegistryConfig struct {
	// MaxConnections is the soft connection cap. Register fails with
	// ErrCapacityExceeded once reached.
	MaxConnections int

	// MaxJobRooms caps the ad-hoc rooms a single connection may join.
	MaxJobRooms int

	// SendBufferSize is the per-connection outbound buffer, in envelopes.
	SendBufferSize int
}

// DefaultRegistryConfig returns the default bounds.
func DefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		MaxConnections: DefaultMaxConnections,
		MaxJobRooms:    DefaultMaxJobRooms,
		SendBufferSize: DefaultSendBuffer,
	}
}

// Registry tracks live connections and room membership, and delivers
// serialized envelopes to rooms. It is the single shared mutable structure
// of the gateway; one process instance holds the whole thing.
type Registry struct {
	// mu protects conns and rooms. Hold times are tiny, so a single lock
	// for both indexes is enough at this room count.
	mu    sync.RWMutex
	conns map[uuid.UUID]*Connection
	rooms map[string]map[uuid.UUID]*Connection

	cfg    RegistryConfig
	logger *slog.Logger
}

// Ensure Registry implements the stats port used by the admin API.
var _ ports.RealtimeStats = (*Registry)(nil)

// NewRegistry creates an empty registry. Zero config fields fall back to
// the defaults.
func NewRegistry(cfg RegistryConfig, logger *slog.Logger) *Registry {
	if cfg.MaxConnections <= 0 {
		cfg.MaxConnections = DefaultMaxConnections
	}
	if cfg.MaxJobRooms <= 0 {
		cfg.MaxJobRooms = DefaultMaxJobRooms
	}
	if cfg.SendBufferSize <= 0 {
		cfg.SendBufferSize = DefaultSendBuffer
	}

	return &Registry{
		conns:  make(map[uuid.UUID]*Connection),
		rooms:  make(map[string]map[uuid.UUID]*Connection),
		cfg:    cfg,
		logger: logger.With("component", "ws_registry"),
	}
}

// Register allocates a Connection for a verified identity and joins its
// identity rooms atomically, so a registered connection is never observed
// outside its user room.
func (r *Registry) Register(identity domain.Identity) (*Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.conns) >= r.cfg.MaxConnections {
		return nil, apperrors.ErrCapacityExceeded
	}

	conn := newConnection(identity, r.cfg.SendBufferSize)
	r.conns[conn.ID] = conn

	for _, room := range identity.Rooms() {
		r.joinLocked(conn, room)
	}

	r.logger.Info("connection registered",
		"conn_id", conn.ID,
		"user_id", identity.UserID,
		"role", identity.Role,
		"total_connections", len(r.conns),
	)

	return conn, nil
}

// Join adds the connection to a room, both ways. Idempotent. Ad-hoc job
// rooms are subject to the per-connection limit.
func (r *Registry) Join(connID uuid.UUID, room string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[connID]
	if !ok {
		return apperrors.ErrUnknownConnection
	}

	if conn.InRoom(room) {
		return nil
	}

	if domain.IsJobRoom(room) && conn.jobRoomCount() >= r.cfg.MaxJobRooms {
		return apperrors.ErrRoomLimitExceeded
	}

	r.joinLocked(conn, room)
	return nil
}

// joinLocked requires r.mu to be held.
func (r *Registry) joinLocked(conn *Connection, room string) {
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[uuid.UUID]*Connection)
		r.rooms[room] = members
	}
	members[conn.ID] = conn
	conn.addRoom(room)
}

// Leave removes the membership both ways. Idempotent; leaving a room the
// connection never joined is a no-op.
func (r *Registry) Leave(connID uuid.UUID, room string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[connID]
	if !ok {
		return apperrors.ErrUnknownConnection
	}

	r.leaveLocked(conn, room)
	return nil
}

// leaveLocked requires r.mu to be held. Rooms with no members left are
// dropped from the index.
func (r *Registry) leaveLocked(conn *Connection, room string) {
	if members, ok := r.rooms[room]; ok {
		delete(members, conn.ID)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
	conn.removeRoom(room)
}

// Deregister removes the connection and every membership it holds, then
// closes its outbound channel. Safe to call more than once; only the
// first call does anything.
func (r *Registry) Deregister(connID uuid.UUID) {
	r.mu.Lock()

	conn, ok := r.conns[connID]
	if !ok {
		r.mu.Unlock()
		return
	}

	delete(r.conns, connID)
	for _, room := range conn.Rooms() {
		r.leaveLocked(conn, room)
	}

	total := len(r.conns)
	r.mu.Unlock()

	conn.closeSend()

	r.logger.Info("connection deregistered",
		"conn_id", connID,
		"user_id", conn.identity.UserID,
		"total_connections", total,
	)
}

// Deliver enqueues the payload onto every member of the room. Full or
// closed buffers are skipped, never waited on, so one slow consumer
// cannot stall the rest of the room. Returns the number of successful
// sends.
func (r *Registry) Deliver(room string, payload []byte) int {
	r.mu.RLock()
	members, ok := r.rooms[room]
	if !ok {
		r.mu.RUnlock()
		return 0
	}

	// Copy the member list so no lock is held while enqueueing.
	conns := make([]*Connection, 0, len(members))
	for _, conn := range members {
		conns = append(conns, conn)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, conn := range conns {
		if conn.trySend(payload) {
			delivered++
		} else {
			r.logger.Warn("send buffer full, dropping delivery",
				"conn_id", conn.ID,
				"user_id", conn.identity.UserID,
				"room", room,
			)
		}
	}
	return delivered
}

// ConnectionCount returns the number of live connections.
func (r *Registry) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// RoomCount returns the number of rooms with at least one member.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// MembersInRoom returns the number of connections joined to a room.
func (r *Registry) MembersInRoom(room string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[room])
}

// ConnectionsByRole returns live connection counts keyed by role.
func (r *Registry) ConnectionsByRole() map[domain.Role]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[domain.Role]int)
	for _, conn := range r.conns {
		counts[conn.identity.Role]++
	}
	return counts
}
