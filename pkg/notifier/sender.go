package notifier

import (
	"context"

	"github.com/flowvault/flowvault/pkg/registry"
	"github.com/flowvault/flowvault/pkg/userstore"
)

// Target carries everything a channel sender needs for one dispatch: the
// validated intent, the resolved push connections, and the addressed user's
// profile when the intent names a single user.
type Target struct {
	Intent      Intent
	User        *userstore.User
	Connections []*registry.Connection

	// UserErr records a user lookup failure. Senders that need the profile
	// report it as a delivery failure instead of panicking on a nil User.
	UserErr error
}

// ChannelSender attempts delivery of one dispatch through one channel.
// Send never returns an error: all failures (network timeouts, provider
// rejections, serialization errors) are caught internally and reported
// through the result, so one channel's failure can never prevent the
// dispatcher from settling the remaining channels.
type ChannelSender interface {
	Channel() Channel
	Send(ctx context.Context, target Target) ChannelResult
}

// RenderedEmail is the output of kind-specific template rendering.
type RenderedEmail struct {
	Subject string
	HTML    string
	Text    string
}

// TemplateRenderer renders the email representation of a notification.
// Implementations are expected to be pure: same kind and payload, same
// output.
type TemplateRenderer interface {
	Render(kind Kind, payload Payload) (RenderedEmail, error)
}
