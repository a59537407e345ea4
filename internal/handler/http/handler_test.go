package http

import (
	"context"
	"errors"
	"maps"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/world-server/internal/auth"
	"github.com/MKhiriev/world-server/internal/config"
	"github.com/MKhiriev/world-server/internal/logger"
)

const testAdminCode = "letmein"

// newTestConfig loads a config rooted in a temp dir with its assets
// directory created. overrides are applied on top of a valid base env.
func newTestConfig(t *testing.T, overrides map[string]string) *config.Config {
	t.Helper()

	env := config.Environment{
		config.KeyWorld:     "town",
		config.KeyJWTSecret: "test-secret",
		config.KeyAdminCode: testAdminCode,
	}
	maps.Copy(env, overrides)

	cfg, err := config.Load(env, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(cfg.World().AssetsDir(), 0o755))

	return cfg
}

func newTestTokens(t *testing.T, cfg *config.Config) *auth.Tokens {
	t.Helper()
	tokens, err := auth.NewTokens(cfg.Auth().JWTSecret(), time.Hour)
	require.NoError(t, err)
	return tokens
}

// newTestHandler builds a Handler with real tokens and a nop logger.
func newTestHandler(t *testing.T, overrides map[string]string) *Handler {
	t.Helper()
	cfg := newTestConfig(t, overrides)
	return NewHandler(cfg, newTestTokens(t, cfg), logger.Nop())
}

// failingTokens implements TokenService and fails every operation.
type failingTokens struct{}

func (failingTokens) Sign(context.Context, auth.Claims) (string, error) {
	return "", errors.New("signer unavailable")
}

func (failingTokens) Verify(context.Context, string) (auth.Claims, bool) {
	return nil, false
}
