package notifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/flowvault/flowvault/pkg/logger"
)

// PushMessage is the envelope emitted on each live connection.
type PushMessage struct {
	Event     string    `json:"event"`
	Priority  Priority  `json:"priority"`
	Timestamp time.Time `json:"timestamp"`
	Data      Payload   `json:"data"`
}

// PushSender delivers notifications to live connections. Emits are fire and
// forget: there is no client acknowledgement in this design, so "delivered"
// means handed to a live transport, not received.
type PushSender struct {
	log *slog.Logger
}

// PushOption configures a PushSender.
type PushOption func(*PushSender)

// WithPushLogger sets the logger for emit failures.
func WithPushLogger(log *slog.Logger) PushOption {
	return func(s *PushSender) {
		if log != nil {
			s.log = log
		}
	}
}

// NewPushSender creates the live-push channel sender.
func NewPushSender(opts ...PushOption) *PushSender {
	s := &PushSender{log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Channel implements ChannelSender.
func (s *PushSender) Channel() Channel { return ChannelPush }

// Send emits the payload on every resolved connection. Zero resolved
// connections means the channel was not attempted, which is not a failure.
// Individual emit errors (a transport buffer filled by a slow client) are
// logged but do not fail the channel: the connection was live at resolve
// time and the transport owns its own cleanup.
func (s *PushSender) Send(ctx context.Context, target Target) ChannelResult {
	if len(target.Connections) == 0 {
		return ChannelResult{Attempted: false}
	}

	msg := PushMessage{
		Event:     target.Intent.Kind.EventName(),
		Priority:  target.Intent.Priority,
		Timestamp: time.Now().UTC(),
		Data:      target.Intent.Payload,
	}

	for _, conn := range target.Connections {
		if err := conn.Emitter.Emit(msg); err != nil {
			s.log.LogAttrs(ctx, slog.LevelWarn, "push emit failed",
				logger.ConnectionID(conn.ID),
				logger.UserID(conn.UserID),
				logger.Error(err),
			)
		}
	}

	return ChannelResult{Attempted: true, Delivered: true}
}
