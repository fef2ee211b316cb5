package notifier

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flowvault/flowvault/pkg/async"
	"github.com/flowvault/flowvault/pkg/userstore"
	"github.com/flowvault/flowvault/pkg/webhook"
)

// webhookTimeout bounds each endpoint POST.
const webhookTimeout = 10 * time.Second

// WebhookEnvelope is the wire format POSTed to registered endpoints. The
// X-Signature header carries the HMAC-SHA256 digest of this envelope's exact
// JSON serialization under the endpoint's secret.
type WebhookEnvelope struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data"`
}

// WebhookSender delivers notifications to the target user's registered
// endpoints, filtered by event-kind subscription.
type WebhookSender struct {
	sender *webhook.Sender
}

// NewWebhookSender creates the webhook channel sender. A nil delivery engine
// gets the default pooled sender.
func NewWebhookSender(sender *webhook.Sender) *WebhookSender {
	if sender == nil {
		sender = webhook.NewSender()
	}
	return &WebhookSender{sender: sender}
}

// Channel implements ChannelSender.
func (s *WebhookSender) Channel() Channel { return ChannelWebhook }

// Send POSTs the signed envelope to every subscribed endpoint. Endpoints
// are attempted concurrently and settled all: one endpoint's failure never
// aborts delivery to the user's other endpoints. The channel counts as
// delivered when at least one endpoint accepted; every individual failure
// is collected into the result's error string for the audit record.
func (s *WebhookSender) Send(ctx context.Context, target Target) ChannelResult {
	if target.Intent.TargetUserID == "" {
		return ChannelResult{Attempted: false}
	}
	if target.UserErr != nil {
		return ChannelResult{Attempted: true, Error: "user lookup: " + target.UserErr.Error()}
	}
	if target.User == nil {
		return ChannelResult{Attempted: false}
	}

	endpoints := target.User.EndpointsFor(string(target.Intent.Kind))
	if len(endpoints) == 0 {
		return ChannelResult{Attempted: false}
	}

	envelope := WebhookEnvelope{
		Event:     target.Intent.Kind.EventName(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      target.Intent.Payload,
	}

	futures := make([]*async.Future[struct{}], len(endpoints))
	for i, ep := range endpoints {
		futures[i] = async.Async(ctx, ep, func(ctx context.Context, ep userstore.WebhookEndpoint) (struct{}, error) {
			return struct{}{}, s.sender.Send(ctx, ep.URL, envelope,
				webhook.WithSignatureSecret(ep.Secret),
				webhook.WithTimeout(webhookTimeout),
				webhook.WithDeliveryID(uuid.New().String()),
			)
		})
	}

	_, errs := async.SettleAll(futures...)

	delivered := false
	var failures []string
	for i, err := range errs {
		if err == nil {
			delivered = true
			continue
		}
		failures = append(failures, endpoints[i].URL+": "+err.Error())
	}

	return ChannelResult{
		Attempted: true,
		Delivered: delivered,
		Error:     strings.Join(failures, "; "),
	}
}
