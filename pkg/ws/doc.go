// Package ws is the websocket transport behind the connection registry.
// The Handler authenticates the handshake with a TokenVerifier, registers
// the connection, and processes subscribe/unsubscribe/ping control frames
// until the socket dies, at which point the connection is removed from the
// registry synchronously.
//
// Outgoing frames go through a buffered per-connection channel. A stalled
// peer gets frames dropped (ErrSlowConsumer) instead of stalling the
// dispatcher or other room members.
package ws
