package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowvault/flowvault/pkg/ws"
)

func TestHMACTokenVerifier(t *testing.T) {
	t.Parallel()

	verifier := newHMACTokenVerifier("test-secret")

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		token := verifier.IssueToken("u1", "admin")
		identity, err := verifier.Verify(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, ws.Identity{UserID: "u1", Role: "admin"}, identity)
	})

	t.Run("tampered signature", func(t *testing.T) {
		t.Parallel()

		token := verifier.IssueToken("u1", "member")
		_, err := verifier.Verify(context.Background(), token+"ff")
		assert.ErrorIs(t, err, ws.ErrUnauthorized)
	})

	t.Run("role swap invalidates", func(t *testing.T) {
		t.Parallel()

		token := verifier.IssueToken("u1", "member")
		parts := token[:len("u1")] + ".admin" + token[len("u1.member"):]
		_, err := verifier.Verify(context.Background(), parts)
		assert.ErrorIs(t, err, ws.ErrUnauthorized)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()

		other := newHMACTokenVerifier("other-secret")
		_, err := verifier.Verify(context.Background(), other.IssueToken("u1", "member"))
		assert.ErrorIs(t, err, ws.ErrUnauthorized)
	})

	t.Run("malformed tokens", func(t *testing.T) {
		t.Parallel()

		for _, token := range []string{"", "u1", "u1.member", ".member.sig", "u1..sig", "a.b.c.d"} {
			_, err := verifier.Verify(context.Background(), token)
			assert.ErrorIs(t, err, ws.ErrUnauthorized, "token %q", token)
		}
	})
}
