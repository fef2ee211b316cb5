package userstore

import (
	"context"
	"errors"
	"slices"
)

// ErrUserNotFound is returned when no user exists for the given ID.
var ErrUserNotFound = errors.New("userstore: user not found")

// WebhookEndpoint is one outbound endpoint a user registered for event
// delivery. EventKinds holds the notification kinds the endpoint subscribed
// to; an empty list means the endpoint receives nothing.
type WebhookEndpoint struct {
	URL        string   `json:"url"`
	Secret     string   `json:"secret"`
	EventKinds []string `json:"event_kinds"`
}

// Subscribed reports whether the endpoint subscribed to the given kind.
func (e WebhookEndpoint) Subscribed(kind string) bool {
	return slices.Contains(e.EventKinds, kind)
}

// User is the identity profile the notification core needs to build
// channel-specific payloads. The authoritative record lives in the external
// identity service; this is a read model.
type User struct {
	ID               string            `json:"id"`
	Email            string            `json:"email"`
	DisplayName      string            `json:"display_name"`
	Role             string            `json:"role"`
	WebhookEndpoints []WebhookEndpoint `json:"webhook_endpoints,omitempty"`
}

// EndpointsFor returns the user's endpoints subscribed to the given kind.
func (u User) EndpointsFor(kind string) []WebhookEndpoint {
	var out []WebhookEndpoint
	for _, ep := range u.WebhookEndpoints {
		if ep.Subscribed(kind) {
			out = append(out, ep)
		}
	}
	return out
}

// Store looks up user profiles by ID.
type Store interface {
	GetUser(ctx context.Context, userID string) (User, error)
}
