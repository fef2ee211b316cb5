package notifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowvault/flowvault/pkg/notifier"
	"github.com/flowvault/flowvault/pkg/userstore"
	"github.com/flowvault/flowvault/pkg/webhook"
)

// capturingEndpoint records the request bodies and signature headers it
// receives.
type capturingEndpoint struct {
	mu         sync.Mutex
	bodies     [][]byte
	signatures []string
	userAgents []string
	server     *httptest.Server
}

func newCapturingEndpoint(t *testing.T, status int) *capturingEndpoint {
	t.Helper()

	ep := &capturingEndpoint{}
	ep.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		ep.mu.Lock()
		ep.bodies = append(ep.bodies, body)
		ep.signatures = append(ep.signatures, r.Header.Get(webhook.SignatureHeader))
		ep.userAgents = append(ep.userAgents, r.Header.Get("User-Agent"))
		ep.mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(ep.server.Close)
	return ep
}

func (ep *capturingEndpoint) calls() int {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	return len(ep.bodies)
}

func webhookTarget(endpoints ...userstore.WebhookEndpoint) notifier.Target {
	return notifier.Target{
		Intent: notifier.NewOverageAlert("u1", validOveragePayload()),
		User: &userstore.User{
			ID:               "u1",
			Email:            "u1@example.com",
			WebhookEndpoints: endpoints,
		},
	}
}

func TestWebhookSender_Send(t *testing.T) {
	t.Parallel()

	t.Run("signs the exact bytes posted", func(t *testing.T) {
		t.Parallel()

		ep := newCapturingEndpoint(t, http.StatusOK)
		s := notifier.NewWebhookSender(nil)

		result := s.Send(context.Background(), webhookTarget(
			userstore.WebhookEndpoint{URL: ep.server.URL, Secret: "secret-1", EventKinds: []string{"overage_alert"}},
		))

		assert.True(t, result.Attempted)
		assert.True(t, result.Delivered)
		assert.Empty(t, result.Error)

		require.Equal(t, 1, ep.calls())
		body, sig := ep.bodies[0], ep.signatures[0]

		// The receiver verifies by recomputing the digest over the raw body.
		assert.True(t, webhook.Verify("secret-1", body, sig))
		assert.False(t, webhook.Verify("wrong-secret", body, sig))

		var envelope notifier.WebhookEnvelope
		require.NoError(t, json.Unmarshal(body, &envelope))
		assert.Equal(t, "overage.alert", envelope.Event)
		_, err := time.Parse(time.RFC3339, envelope.Timestamp)
		assert.NoError(t, err)
		assert.NotNil(t, envelope.Data)

		assert.Contains(t, ep.userAgents[0], "flowvault-webhook")
	})

	t.Run("settles all endpoints when one fails", func(t *testing.T) {
		t.Parallel()

		good := newCapturingEndpoint(t, http.StatusOK)
		bad := newCapturingEndpoint(t, http.StatusInternalServerError)
		s := notifier.NewWebhookSender(nil)

		result := s.Send(context.Background(), webhookTarget(
			userstore.WebhookEndpoint{URL: bad.server.URL, Secret: "s-bad", EventKinds: []string{"overage_alert"}},
			userstore.WebhookEndpoint{URL: good.server.URL, Secret: "s-good", EventKinds: []string{"overage_alert"}},
		))

		assert.True(t, result.Attempted)
		assert.True(t, result.Delivered)
		assert.Contains(t, result.Error, bad.server.URL)
		assert.NotContains(t, result.Error, good.server.URL)
		assert.Equal(t, 1, good.calls())
	})

	t.Run("no subscribed endpoints means not attempted", func(t *testing.T) {
		t.Parallel()

		ep := newCapturingEndpoint(t, http.StatusOK)
		s := notifier.NewWebhookSender(nil)

		result := s.Send(context.Background(), webhookTarget(
			userstore.WebhookEndpoint{URL: ep.server.URL, Secret: "s", EventKinds: []string{"billing_update"}},
		))

		assert.False(t, result.Attempted)
		assert.Zero(t, ep.calls())
	})

	t.Run("room intents are not attempted", func(t *testing.T) {
		t.Parallel()

		s := notifier.NewWebhookSender(nil)
		result := s.Send(context.Background(), notifier.Target{
			Intent: notifier.NewSystemAlert("admin", notifier.SystemAlertPayload{Title: "t"}),
		})
		assert.False(t, result.Attempted)
	})

	t.Run("user lookup failure is a channel failure", func(t *testing.T) {
		t.Parallel()

		s := notifier.NewWebhookSender(nil)
		result := s.Send(context.Background(), notifier.Target{
			Intent:  notifier.NewOverageAlert("u1", validOveragePayload()),
			UserErr: errors.New("store timeout"),
		})
		assert.True(t, result.Attempted)
		assert.False(t, result.Delivered)
		assert.Contains(t, result.Error, "user lookup")
	})

	t.Run("all endpoints failing settles undelivered", func(t *testing.T) {
		t.Parallel()

		bad1 := newCapturingEndpoint(t, http.StatusBadGateway)
		bad2 := newCapturingEndpoint(t, http.StatusServiceUnavailable)
		s := notifier.NewWebhookSender(nil)

		result := s.Send(context.Background(), webhookTarget(
			userstore.WebhookEndpoint{URL: bad1.server.URL, Secret: "s1", EventKinds: []string{"overage_alert"}},
			userstore.WebhookEndpoint{URL: bad2.server.URL, Secret: "s2", EventKinds: []string{"overage_alert"}},
		))

		assert.True(t, result.Attempted)
		assert.False(t, result.Delivered)
		assert.Contains(t, result.Error, bad1.server.URL)
		assert.Contains(t, result.Error, bad2.server.URL)
	})
}
