// Package registry tracks live bidirectional connections and the logical
// broadcast rooms they belong to.
//
// The registry is the only mutable shared resource in the notification core.
// It owns Connection records exclusively: connections are created on
// successful handshake via Register and destroyed synchronously on disconnect
// via Unregister. Every connection deterministically joins a per-user room
// ("user:{id}"), a per-role room ("role:{role}"), and the shared "admin" room
// when registered with the admin role.
//
// Basic usage:
//
//	reg := registry.New()
//
//	conn, err := reg.Register(uuid.New().String(), "u1", registry.RoleUser, emitter)
//	if err != nil {
//		// duplicate connection id - caller bug
//	}
//
//	for _, c := range reg.FindByUser("u1") {
//		_ = c.Emitter.Emit(payload)
//	}
//
//	reg.Unregister(conn.ID) // idempotent
//
// All methods are safe for concurrent use. Find methods return snapshots that
// are only valid at call time; they must not be cached across suspension
// points.
package registry
