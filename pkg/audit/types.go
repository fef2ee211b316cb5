package audit

import (
	"time"

	"github.com/flowvault/flowvault/pkg/notifier"
)

// ChannelRecord is the stored form of one channel's delivery result.
type ChannelRecord struct {
	Attempted bool   `json:"attempted" bson:"attempted"`
	Delivered bool   `json:"delivered" bson:"delivered"`
	Error     string `json:"error,omitempty" bson:"error,omitempty"`
}

// Entry is one durable audit record of a dispatch. Entries are append-only
// and never mutated after being written.
type Entry struct {
	ID           string        `json:"id" bson:"_id"`
	Kind         string        `json:"kind" bson:"kind"`
	Priority     string        `json:"priority" bson:"priority"`
	TargetUserID string        `json:"target_user_id,omitempty" bson:"target_user_id,omitempty"`
	TargetRoom   string        `json:"target_room,omitempty" bson:"target_room,omitempty"`
	Push         ChannelRecord `json:"push" bson:"push"`
	Email        ChannelRecord `json:"email" bson:"email"`
	Webhook      ChannelRecord `json:"webhook" bson:"webhook"`
	Delivered    bool          `json:"delivered" bson:"delivered"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
}

func entryFromOutcome(o notifier.Outcome) Entry {
	return Entry{
		ID:           o.ID,
		Kind:         string(o.Kind),
		Priority:     string(o.Priority),
		TargetUserID: o.TargetUserID,
		TargetRoom:   o.TargetRoom,
		Push:         ChannelRecord(o.Push),
		Email:        ChannelRecord(o.Email),
		Webhook:      ChannelRecord(o.Webhook),
		Delivered:    o.Delivered,
		CreatedAt:    o.CreatedAt,
	}
}

// Filter narrows List queries. Zero-value fields are ignored.
type Filter struct {
	UserID        string
	Kind          string
	DeliveredOnly bool
	Since         time.Time
	Limit         int
}
