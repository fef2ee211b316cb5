// Package router translates a notification's logical addressing into the
// concrete set of live connections to push to.
//
// Three addressing modes exist: a single user (all of their simultaneous
// connections), a named room, or broadcast-all when neither is set.
// Resolution happens at dispatch time against the live registry; results are
// point-in-time snapshots and must not be cached.
package router
