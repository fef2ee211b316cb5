// Package userstore provides read access to user identity profiles: email,
// display name, role, and registered webhook endpoints.
//
// The authoritative user records live in the external identity service; the
// notification core only consumes them through the Store interface. Memory
// backs tests and development, and Cache adds a Redis read-through layer for
// the dispatch hot path.
package userstore
