package router

import (
	"github.com/flowvault/flowvault/pkg/registry"
)

// ConnectionSource is the read-only slice of the registry the router needs.
// *registry.Registry satisfies it.
type ConnectionSource interface {
	FindByUser(userID string) []*registry.Connection
	FindByRoom(room string) []*registry.Connection
	All() []*registry.Connection
}

// Target is the addressing of one notification: a single user, a room, or
// neither for broadcast-all. Setting both fields is a contract violation.
type Target struct {
	UserID string
	Room   string
}

// Broadcast reports whether the target addresses every live connection.
func (t Target) Broadcast() bool {
	return t.UserID == "" && t.Room == ""
}

// Router resolves a logical target into the concrete set of live
// connections at call time. It holds no state of its own and never caches
// registry snapshots.
type Router struct {
	source ConnectionSource
}

// New creates a router over the given connection source.
func New(source ConnectionSource) *Router {
	return &Router{source: source}
}

// Resolve returns the deduplicated list of live connections the target
// addresses. An empty result is not an error: the dispatcher records it as
// "push channel not attempted". The only failure mode is ambiguous
// addressing, which indicates a caller bug.
func (r *Router) Resolve(target Target) ([]*registry.Connection, error) {
	if target.UserID != "" && target.Room != "" {
		return nil, ErrAmbiguousAddressing
	}

	var conns []*registry.Connection
	switch {
	case target.UserID != "":
		conns = r.source.FindByUser(target.UserID)
	case target.Room != "":
		conns = r.source.FindByRoom(target.Room)
	default:
		conns = r.source.All()
	}

	return dedupe(conns), nil
}

// dedupe drops repeated connection IDs while preserving order. Registry
// snapshots are already unique per index; alternative ConnectionSource
// implementations may not be. The input is never mutated: the source may
// hand out a slice it also shares with other callers.
func dedupe(conns []*registry.Connection) []*registry.Connection {
	seen := make(map[string]struct{}, len(conns))
	out := make([]*registry.Connection, 0, len(conns))
	for _, conn := range conns {
		if _, dup := seen[conn.ID]; dup {
			continue
		}
		seen[conn.ID] = struct{}{}
		out = append(out, conn)
	}
	return out
}
