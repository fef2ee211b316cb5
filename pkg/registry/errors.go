package registry

import "errors"

var (
	// ErrDuplicateConnection is returned when registering a connection ID
	// that is already live. This indicates a caller bug, not a runtime
	// condition: correctly generated IDs never collide.
	ErrDuplicateConnection = errors.New("registry: duplicate connection id")

	// ErrConnectionNotFound is returned by room operations targeting a
	// connection that is not registered.
	ErrConnectionNotFound = errors.New("registry: connection not found")

	// ErrReservedRoom is returned when a connection tries to join an
	// identity-derived room that is not its own. The admin, user:, and
	// role: rooms are assigned at registration and carry authorization
	// weight; letting clients join them would let any connection receive
	// another user's or the admins' notifications.
	ErrReservedRoom = errors.New("registry: room is reserved")
)
