package ws

import "context"

// Identity is the authenticated principal behind a websocket handshake.
// Role is fixed for the lifetime of the connection; a role change requires
// reconnecting with a fresh token.
type Identity struct {
	UserID string
	Role   string
}

// TokenVerifier validates a handshake token and resolves the identity it
// carries.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// TokenVerifierFunc adapts a function to the TokenVerifier interface.
type TokenVerifierFunc func(ctx context.Context, token string) (Identity, error)

func (f TokenVerifierFunc) Verify(ctx context.Context, token string) (Identity, error) {
	return f(ctx, token)
}
