// Package webhook delivers signed JSON payloads to user-registered HTTP
// endpoints.
//
// Each delivery is a POST with Content-Type: application/json, an
// identifying User-Agent, and an X-Signature header carrying the hex
// HMAC-SHA256 digest of the exact body bytes under the endpoint's secret.
// Receivers verify with webhook.Verify over the raw request body.
//
//	sender := webhook.NewSender()
//	err := sender.Send(ctx, endpoint.URL, envelope,
//		webhook.WithSignatureSecret(endpoint.Secret),
//		webhook.WithTimeout(10*time.Second),
//	)
//
// Retries are disabled by default because the notification core records
// failures instead of looping; redelivery policies layered on top can enable
// them via WithMaxRetries or WithExponentialRetry, optionally combined with
// a per-endpoint CircuitBreaker.
package webhook
