// Package email provides transactional email delivery behind the
// EmailSender interface.
//
// Two implementations are included: a Postmark-backed client for production
// and DevSender, which writes outbound mail to disk for local inspection.
// Rendering of kind-specific notification templates lives in the templates
// subpackage; this package only submits already-rendered messages.
//
//	sender := email.MustNewPostmarkClient(cfg)
//	err := sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   user.Email,
//		Subject:  rendered.Subject,
//		BodyHTML: rendered.HTML,
//		BodyText: rendered.Text,
//		Tag:      "overage_alert",
//	})
package email
