package registry

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/flowvault/flowvault/pkg/logger"
)

// Registry is the authoritative source of truth for which connections are
// live and which rooms they belong to. All methods are safe for concurrent
// use; mutations are single-step operations so concurrent readers always
// observe a fully-before or fully-after view, never a torn one.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Connection
	rooms map[string]map[string]*Connection
	log   *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for connection lifecycle events.
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates an empty connection registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		conns: make(map[string]*Connection),
		rooms: make(map[string]map[string]*Connection),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register records a newly authenticated connection and computes its initial
// room set from the user ID and role. A duplicate connection ID indicates a
// caller bug and fails with ErrDuplicateConnection.
func (r *Registry) Register(connID, userID, role string, emitter Emitter) (*Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.conns[connID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateConnection, connID)
	}

	conn := &Connection{
		ID:          connID,
		UserID:      userID,
		Role:        role,
		ConnectedAt: time.Now(),
		Emitter:     emitter,
		rooms:       baseRooms(userID, role),
	}

	r.conns[connID] = conn
	for room := range conn.rooms {
		r.addToRoom(room, conn)
	}

	r.log.Debug("connection registered",
		logger.ConnectionID(connID),
		logger.UserID(userID),
		logger.Role(role),
	)
	return conn, nil
}

// Unregister removes a connection and all of its room memberships. Removing
// an unknown ID is a no-op because disconnect races are expected.
func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, exists := r.conns[connID]
	if !exists {
		return
	}

	for room := range conn.rooms {
		r.removeFromRoom(room, connID)
	}
	delete(r.conns, connID)

	r.log.Debug("connection unregistered",
		logger.ConnectionID(connID),
		logger.UserID(conn.UserID),
	)
}

// JoinRoom adds a connection to an additional room. Joining a room the
// connection is already in is a no-op. Identity-derived rooms other than the
// connection's own are rejected with ErrReservedRoom: membership in admin,
// user:, and role: rooms is decided at registration, never by the client.
func (r *Registry) JoinRoom(connID, room string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, exists := r.conns[connID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrConnectionNotFound, connID)
	}

	if _, member := conn.rooms[room]; member {
		return nil
	}
	if reservedRoom(room) {
		return fmt.Errorf("%w: %s", ErrReservedRoom, room)
	}
	conn.rooms[room] = struct{}{}
	r.addToRoom(room, conn)
	return nil
}

// LeaveRoom removes a connection from a room. The deterministic base rooms
// (user, role, admin) cannot be left; attempts to do so are no-ops so the
// registry invariants survive misbehaving clients.
func (r *Registry) LeaveRoom(connID, room string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, exists := r.conns[connID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrConnectionNotFound, connID)
	}

	if _, ok := baseRooms(conn.UserID, conn.Role)[room]; ok {
		return nil
	}
	if _, member := conn.rooms[room]; !member {
		return nil
	}
	delete(conn.rooms, room)
	r.removeFromRoom(room, connID)
	return nil
}

// FindByUser returns all live connections held by a user. A user may hold
// multiple simultaneous connections (tabs, devices).
func (r *Registry) FindByUser(userID string) []*Connection {
	return r.FindByRoom(UserRoom(userID))
}

// FindByRoom returns a snapshot of the room's live membership. The snapshot
// is only valid at call time; callers must not cache it across suspension
// points.
func (r *Registry) FindByRoom(room string) []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.rooms[room]
	out := make([]*Connection, 0, len(members))
	for _, conn := range members {
		out = append(out, conn)
	}
	return out
}

// All returns a snapshot of every live connection.
func (r *Registry) All() []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Connection, 0, len(r.conns))
	for _, conn := range r.conns {
		out = append(out, conn)
	}
	return out
}

// Rooms returns the room names a connection currently belongs to.
func (r *Registry) Rooms(connID string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, exists := r.conns[connID]
	if !exists {
		return nil, false
	}
	out := make([]string, 0, len(conn.rooms))
	for room := range conn.rooms {
		out = append(out, room)
	}
	return out, true
}

// Count returns the number of live connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// CountByRole returns the number of live connections registered with a role.
func (r *Registry) CountByRole(role string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[RoleRoom(role)])
}

// addToRoom must be called with the write lock held.
func (r *Registry) addToRoom(room string, conn *Connection) {
	members, exists := r.rooms[room]
	if !exists {
		members = make(map[string]*Connection)
		r.rooms[room] = members
	}
	members[conn.ID] = conn
}

// removeFromRoom must be called with the write lock held. Empty rooms are
// deleted eagerly to keep the index from accumulating dead entries.
func (r *Registry) removeFromRoom(room, connID string) {
	members, exists := r.rooms[room]
	if !exists {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(r.rooms, room)
	}
}
