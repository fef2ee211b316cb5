package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureHeader is the HTTP header carrying the payload signature.
const SignatureHeader = "X-Signature"

// Sign computes the hex-encoded HMAC-SHA256 digest of the exact payload
// bytes using the endpoint's configured secret. Receivers verify by
// recomputing the digest over the raw request body.
func Sign(secret string, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// Verify reports whether signature matches the payload under the given
// secret. Comparison is constant-time to prevent timing attacks.
func Verify(secret string, payload []byte, signature string) bool {
	expected := Sign(secret, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}
