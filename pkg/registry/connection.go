package registry

import (
	"strings"
	"time"
)

// Role names recognized by the registry. Roles outside this set are stored
// as-is; only RoleAdmin gets special room treatment.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// RoomAdmin is the shared room every admin connection joins on registration.
const RoomAdmin = "admin"

// UserRoom returns the per-user room name for the given user ID.
func UserRoom(userID string) string {
	return "user:" + userID
}

// RoleRoom returns the shared room name for the given role.
func RoleRoom(role string) string {
	return "role:" + role
}

// Emitter pushes a payload onto the transport backing a single connection.
// Implementations must not block; a full or dead transport should drop the
// payload and report an error instead of stalling the caller.
type Emitter interface {
	Emit(v any) error
}

// Connection is one live bidirectional channel instance. ID, UserID, Role,
// ConnectedAt, and Emitter are immutable for the connection's lifetime.
// Room membership is owned by the Registry and must only be read through
// Registry methods.
type Connection struct {
	ID          string
	UserID      string
	Role        string
	ConnectedAt time.Time
	Emitter     Emitter

	// rooms is guarded by the owning registry's mutex.
	rooms map[string]struct{}
}

// IsAdmin reports whether the connection was registered with the admin role.
func (c *Connection) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// reservedRoom reports whether a room name belongs to the identity-derived
// namespace assigned at registration.
func reservedRoom(room string) bool {
	return room == RoomAdmin ||
		strings.HasPrefix(room, "user:") ||
		strings.HasPrefix(room, "role:")
}

// baseRooms computes the deterministic initial room set for a connection.
func baseRooms(userID, role string) map[string]struct{} {
	rooms := map[string]struct{}{
		UserRoom(userID): {},
		RoleRoom(role):   {},
	}
	if role == RoleAdmin {
		rooms[RoomAdmin] = struct{}{}
	}
	return rooms
}
