package notifier

import "time"

// Channel names one delivery mechanism with its own failure domain.
type Channel string

const (
	ChannelPush    Channel = "push"
	ChannelEmail   Channel = "email"
	ChannelWebhook Channel = "webhook"
)

// ChannelResult records what happened on one channel during one dispatch.
// Attempted is false when the channel had no resolvable target (an offline
// user for push, no subscribed endpoints for webhook); that is not a
// failure. Error is set only for genuine delivery failures.
type ChannelResult struct {
	Attempted bool   `json:"attempted"`
	Delivered bool   `json:"delivered"`
	Error     string `json:"error,omitempty"`
}

// Outcome is the immutable result of one fan-out. It is constructed fresh
// per dispatch call, handed to the audit sink for durable storage, and
// returned to the caller.
type Outcome struct {
	ID           string        `json:"id"`
	Kind         Kind          `json:"kind"`
	Priority     Priority      `json:"priority"`
	TargetUserID string        `json:"target_user_id,omitempty"`
	TargetRoom   string        `json:"target_room,omitempty"`
	Push         ChannelResult `json:"push"`
	Email        ChannelResult `json:"email"`
	Webhook      ChannelResult `json:"webhook"`
	Delivered    bool          `json:"delivered"`
	CreatedAt    time.Time     `json:"created_at"`
}
