package http

import (
	"context"

	"github.com/MKhiriev/world-server/internal/auth"
)

// contextKey is a private type for context keys, preventing collisions with
// keys set by other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// claimsCtxKey stores the verified token payload of the current request.
var claimsCtxKey = contextKey("claims")

// ClaimsFromContext returns the token payload stored by the auth middleware.
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey).(auth.Claims)
	return claims, ok
}
