package http

import (
	"context"

	"github.com/MKhiriev/world-server/internal/auth"
)

// TokenService issues and verifies client tokens. [*auth.Tokens] is the
// production implementation.
type TokenService interface {
	// Sign returns a signed token carrying claims.
	Sign(ctx context.Context, claims auth.Claims) (string, error)
	// Verify returns the token payload, or false for any invalid token.
	Verify(ctx context.Context, token string) (auth.Claims, bool)
}
