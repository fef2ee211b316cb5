package webhook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowvault/flowvault/pkg/webhook"
)

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"event":"overage.alert","timestamp":"2026-08-31T12:00:00Z","data":{}}`)

	sig := webhook.Sign("secret", payload)
	assert.Len(t, sig, 64) // hex-encoded sha256

	assert.True(t, webhook.Verify("secret", payload, sig))
	assert.False(t, webhook.Verify("other", payload, sig))
	assert.False(t, webhook.Verify("secret", []byte(`tampered`), sig))
	assert.False(t, webhook.Verify("secret", payload, "deadbeef"))
}

// TestSign_KnownAnswer pins the digest to an externally computed value so a
// regression in Sign cannot hide behind Verify recomputing the same way.
func TestSign_KnownAnswer(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"event":"overage.alert","timestamp":"2026-08-31T12:00:00Z","data":{}}`)

	// echo -n <payload> | openssl dgst -sha256 -hmac whsec_test
	assert.Equal(t,
		"e51723f767d03e2561039619ad5a5580d69938c526b4bff25247f9f65a9da14c",
		webhook.Sign("whsec_test", payload),
	)

	// RFC 2104 style empty-key, empty-message vector.
	assert.Equal(t,
		"b613679a0814d9ec772f95d778c35fc5ff1697c493715653c6c712144292c5ad",
		webhook.Sign("", nil),
	)
}

func TestSign_Deterministic(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"a":1}`)
	assert.Equal(t, webhook.Sign("s", payload), webhook.Sign("s", payload))
	assert.NotEqual(t, webhook.Sign("s", payload), webhook.Sign("s2", payload))
}
