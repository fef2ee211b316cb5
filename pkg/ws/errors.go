package ws

import "errors"

var (
	// ErrSlowConsumer means the connection's outgoing buffer was full and
	// the frame was dropped.
	ErrSlowConsumer = errors.New("ws: slow consumer, frame dropped")
	// ErrConnClosed means the connection has been shut down.
	ErrConnClosed = errors.New("ws: connection closed")
	// ErrUnauthorized means the handshake carried no valid token.
	ErrUnauthorized = errors.New("ws: unauthorized")
)
