package ws

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Client message types.
const (
	TypeSubscribe   = "subscribe"
	TypeUnsubscribe = "unsubscribe"
	TypePing        = "ping"
)

// Server message types.
const (
	TypePong  = "pong"
	TypeError = "error"
)

// ClientMessage is a control frame sent by the client. Notification frames
// only ever flow server to client.
type ClientMessage struct {
	Type string `json:"type"`
	Room string `json:"room,omitempty"`
}

// Validate checks the message is well formed for its type.
func (m ClientMessage) Validate() error {
	switch m.Type {
	case TypeSubscribe, TypeUnsubscribe:
		if strings.TrimSpace(m.Room) == "" {
			return fmt.Errorf("ws: %s requires a room", m.Type)
		}
		return nil
	case TypePing:
		return nil
	default:
		return fmt.Errorf("ws: unknown message type %q", m.Type)
	}
}

// ParseClientMessage decodes and validates one inbound frame.
func ParseClientMessage(data []byte) (ClientMessage, error) {
	var m ClientMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return ClientMessage{}, fmt.Errorf("ws: decode message: %w", err)
	}
	if err := m.Validate(); err != nil {
		return ClientMessage{}, err
	}
	return m, nil
}

// ServerMessage is a control reply sent by the server.
type ServerMessage struct {
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`
}
