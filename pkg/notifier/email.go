package notifier

import (
	"context"

	"github.com/flowvault/flowvault/pkg/email"
)

// EmailSender delivers notifications as transactional email. Rendering and
// transport are both external collaborators; this sender only wires a
// dispatch target to them and maps failures into the channel result.
type EmailSender struct {
	renderer  TemplateRenderer
	transport email.EmailSender
}

// NewEmailSender creates the email channel sender.
func NewEmailSender(renderer TemplateRenderer, transport email.EmailSender) *EmailSender {
	return &EmailSender{renderer: renderer, transport: transport}
}

// Channel implements ChannelSender.
func (s *EmailSender) Channel() Channel { return ChannelEmail }

// Send renders the kind-specific template and submits it to the mail
// transport. Room and broadcast intents have no single mailbox to address,
// so the channel is not attempted for them. There is no retry here: a
// provider failure is recorded and left to higher-level policy.
func (s *EmailSender) Send(ctx context.Context, target Target) ChannelResult {
	if target.Intent.TargetUserID == "" {
		return ChannelResult{Attempted: false}
	}
	if target.UserErr != nil {
		return ChannelResult{Attempted: true, Error: "user lookup: " + target.UserErr.Error()}
	}
	if target.User == nil || target.User.Email == "" {
		return ChannelResult{Attempted: false}
	}

	rendered, err := s.renderer.Render(target.Intent.Kind, target.Intent.Payload)
	if err != nil {
		return ChannelResult{Attempted: true, Error: "render: " + err.Error()}
	}

	err = s.transport.SendEmail(ctx, email.SendEmailParams{
		SendTo:   target.User.Email,
		Subject:  rendered.Subject,
		BodyHTML: rendered.HTML,
		BodyText: rendered.Text,
		Tag:      string(target.Intent.Kind),
	})
	if err != nil {
		return ChannelResult{Attempted: true, Error: err.Error()}
	}

	return ChannelResult{Attempted: true, Delivered: true}
}
