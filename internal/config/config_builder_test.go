// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRoot = filepath.Join(string(filepath.Separator), "srv", "world-server")

// baseEnv returns the smallest environment that loads successfully.
func baseEnv(overrides map[string]string) Environment {
	env := Environment{
		KeyWorld:     "town/main",
		KeyJWTSecret: "super-secret",
	}
	maps.Copy(env, overrides)
	return env
}

func TestLoad_Defaults(t *testing.T) {
	// Arrange
	env := baseEnv(nil)

	// Act
	cfg, err := Load(env, testRoot)

	// Assert
	require.NoError(t, err)

	world := cfg.World()
	assert.Equal(t, filepath.Join("town", "main"), world.Name())
	assert.Equal(t, filepath.Join(testRoot, "town", "main"), world.Dir())
	assert.Equal(t, filepath.Join(testRoot, "town", "main", "assets"), world.AssetsDir())
	assert.Equal(t, filepath.Join(testRoot, "town", "main", "collections"), world.CollectionsDir())

	assert.Equal(t, 3000, cfg.Server().Port())
	assert.Equal(t, ":3000", cfg.Server().Address())
	assert.Equal(t, 60, cfg.Server().SaveInterval())
	assert.Equal(t, time.Minute, cfg.Server().SaveIntervalDuration())

	assert.Equal(t, "super-secret", cfg.Auth().JWTSecret())
	_, hasCode := cfg.Auth().AdminCode()
	assert.False(t, hasCode)
	assert.False(t, cfg.Auth().HasAdminCode())

	public := cfg.Public()
	assert.Equal(t, "http://localhost:3000/assets", public.AssetsURL())
	assert.Equal(t, "http://localhost:3000/api", public.APIURL())
	assert.Equal(t, "ws://localhost:3000/ws", public.WSURL())
	assert.Equal(t, 12, public.MaxUploadSize())
	assert.Equal(t, int64(12*1024*1024), public.MaxUploadBytes())

	assert.Equal(t, map[string]string{
		KeyPublicAssetsURL:     "http://localhost:3000/assets",
		KeyPublicAPIURL:        "http://localhost:3000/api",
		KeyPublicWSURL:         "ws://localhost:3000/ws",
		KeyPublicMaxUploadSize: "12",
	}, public.Env())

	_, hasCommit := cfg.CommitHash()
	assert.False(t, hasCommit)
	assert.False(t, cfg.LiveKit().Enabled())
}

func TestLoad_PortFlowsIntoDefaultURLs(t *testing.T) {
	cfg, err := Load(baseEnv(map[string]string{KeyPort: "8080"}), testRoot)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server().Port())
	assert.Equal(t, "ws://localhost:8080/ws", cfg.Public().WSURL())
	assert.Equal(t, "http://localhost:8080/api", cfg.Public().APIURL())
	assert.Equal(t, "http://localhost:8080/assets", cfg.Public().AssetsURL())
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{KeyWorld, KeyJWTSecret} {
		t.Run(key, func(t *testing.T) {
			env := baseEnv(nil)
			delete(env, key)

			cfg, err := Load(env, testRoot)

			require.ErrorIs(t, err, ErrMissingRequiredVariable)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_BlankSecretIsMissing(t *testing.T) {
	_, err := Load(baseEnv(map[string]string{KeyJWTSecret: "   "}), testRoot)

	require.ErrorIs(t, err, ErrMissingRequiredVariable)
}

func TestLoad_InvalidWorld(t *testing.T) {
	for _, world := range []string{"/etc", "../../secrets", "a/../../b"} {
		t.Run(world, func(t *testing.T) {
			_, err := Load(baseEnv(map[string]string{KeyWorld: world}), testRoot)

			require.ErrorIs(t, err, ErrInvalidPath)
		})
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	for _, port := range []string{"0", "65536", "abc", "80.5"} {
		t.Run(port, func(t *testing.T) {
			_, err := Load(baseEnv(map[string]string{KeyPort: port}), testRoot)

			require.ErrorIs(t, err, ErrInvalidInteger)
			// default URLs depend on the port and are skipped, not reported
			assert.NotErrorIs(t, err, ErrInvalidURL)
		})
	}
}

func TestLoad_InvalidPortStillChecksExplicitURLs(t *testing.T) {
	_, err := Load(baseEnv(map[string]string{
		KeyPort:        "abc",
		KeyPublicWSURL: "http://example.com",
	}), testRoot)

	require.ErrorIs(t, err, ErrInvalidInteger)
	require.ErrorIs(t, err, ErrInvalidURL)
}

func TestLoad_SaveInterval(t *testing.T) {
	cfg, err := Load(baseEnv(map[string]string{KeySaveInterval: "0"}), testRoot)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Server().SaveInterval())

	_, err = Load(baseEnv(map[string]string{KeySaveInterval: "-1"}), testRoot)
	require.ErrorIs(t, err, ErrInvalidInteger)
}

func TestLoad_PublicWSURL(t *testing.T) {
	_, err := Load(baseEnv(map[string]string{KeyPublicWSURL: "http://example.com"}), testRoot)
	require.ErrorIs(t, err, ErrInvalidURL)

	cfg, err := Load(baseEnv(map[string]string{KeyPublicWSURL: "wss://example.com/"}), testRoot)
	require.NoError(t, err)
	assert.Equal(t, "wss://example.com", cfg.Public().WSURL())
	assert.Equal(t, "wss://example.com", cfg.Public().Env()[KeyPublicWSURL])
}

func TestLoad_RootRelativeURLs(t *testing.T) {
	cfg, err := Load(baseEnv(map[string]string{
		KeyPublicAssetsURL: "/assets/",
		KeyPublicAPIURL:    "/api",
		KeyPublicWSURL:     "/ws/",
	}), testRoot)

	require.NoError(t, err)
	assert.Equal(t, "/assets", cfg.Public().AssetsURL())
	assert.Equal(t, "/api", cfg.Public().APIURL())
	assert.Equal(t, "/ws", cfg.Public().WSURL())
}

func TestLoad_MaxUploadSize(t *testing.T) {
	_, err := Load(baseEnv(map[string]string{KeyPublicMaxUploadSize: "0"}), testRoot)
	require.ErrorIs(t, err, ErrInvalidInteger)

	cfg, err := Load(baseEnv(map[string]string{KeyPublicMaxUploadSize: "50"}), testRoot)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Public().MaxUploadSize())
	assert.Equal(t, "50", cfg.Public().Env()[KeyPublicMaxUploadSize])
}

func TestLoad_AdminCode(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantCode string
		wantSet  bool
		wantHas  bool
	}{
		{name: "absent", env: nil},
		{name: "empty", env: map[string]string{KeyAdminCode: ""}, wantSet: true},
		{name: "whitespace", env: map[string]string{KeyAdminCode: "   "}, wantSet: true},
		{name: "set", env: map[string]string{KeyAdminCode: " letmein "}, wantCode: "letmein", wantSet: true, wantHas: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(baseEnv(tt.env), testRoot)
			require.NoError(t, err)

			code, set := cfg.Auth().AdminCode()
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantSet, set)
			assert.Equal(t, tt.wantHas, cfg.Auth().HasAdminCode())
		})
	}
}

func TestLoad_OptionalStrings(t *testing.T) {
	cfg, err := Load(baseEnv(map[string]string{
		KeyCommitHash:       "abc123",
		KeyLiveKitWSURL:     "wss://voice.example.com",
		KeyLiveKitAPIKey:    "key",
		KeyLiveKitAPISecret: "",
	}), testRoot)
	require.NoError(t, err)

	commit, ok := cfg.CommitHash()
	assert.True(t, ok)
	assert.Equal(t, "abc123", commit)

	liveKit := cfg.LiveKit()
	wsURL, ok := liveKit.WSURL()
	assert.True(t, ok)
	assert.Equal(t, "wss://voice.example.com", wsURL)
	apiKey, ok := liveKit.APIKey()
	assert.True(t, ok)
	assert.Equal(t, "key", apiKey)
	apiSecret, ok := liveKit.APISecret()
	assert.True(t, ok)
	assert.Empty(t, apiSecret)
	assert.True(t, liveKit.Enabled())
}

func TestLoad_PublicEnv(t *testing.T) {
	cfg, err := Load(baseEnv(map[string]string{
		"PUBLIC_FEATURE":       "on",
		"PUBLIC_EMPTY":         "",
		KeyPublicAPIURL:        "https://api.example.com/",
		KeyPublicMaxUploadSize: " 20 ",
		"PRIVATE_TOKEN":        "hidden",
	}), testRoot)
	require.NoError(t, err)

	env := cfg.Public().Env()
	assert.Equal(t, "on", env["PUBLIC_FEATURE"])
	value, ok := env["PUBLIC_EMPTY"]
	assert.True(t, ok)
	assert.Equal(t, "", value)
	// derived values take precedence over raw ones
	assert.Equal(t, "https://api.example.com", env[KeyPublicAPIURL])
	assert.Equal(t, "20", env[KeyPublicMaxUploadSize])
	assert.NotContains(t, env, "PRIVATE_TOKEN")
	assert.NotContains(t, env, KeyJWTSecret)
}

func TestLoad_ReportsEveryInvalidVariable(t *testing.T) {
	env := Environment{
		KeyWorld:               "/etc",
		KeyPort:                "abc",
		KeyPublicMaxUploadSize: "0",
	}

	_, err := Load(env, testRoot)

	require.ErrorIs(t, err, ErrInvalidPath)
	require.ErrorIs(t, err, ErrInvalidInteger)
	require.ErrorIs(t, err, ErrMissingRequiredVariable)

	var keys []string
	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(errors.Unwrap(err), &joined))
	for _, e := range joined.Unwrap() {
		var varErr *VariableError
		if errors.As(e, &varErr) {
			keys = append(keys, varErr.Key)
		}
	}
	assert.ElementsMatch(t, []string{KeyWorld, KeyPort, KeyJWTSecret, KeyPublicMaxUploadSize}, keys)
}

func TestLoad_DoesNotMutateEnvironment(t *testing.T) {
	env := baseEnv(map[string]string{KeyPublicWSURL: "wss://example.com/"})
	before := maps.Clone(env)

	_, err := Load(env, testRoot)

	require.NoError(t, err)
	assert.Equal(t, before, env)
}

func TestConfig_ReturnedValuesAreCopies(t *testing.T) {
	cfg, err := Load(baseEnv(map[string]string{"PUBLIC_FEATURE": "on"}), testRoot)
	require.NoError(t, err)

	env := cfg.Public().Env()
	env["PUBLIC_FEATURE"] = "off"
	env["PUBLIC_INJECTED"] = "x"
	delete(env, KeyPublicWSURL)

	again := cfg.Public().Env()
	assert.Equal(t, "on", again["PUBLIC_FEATURE"])
	assert.NotContains(t, again, "PUBLIC_INJECTED")
	assert.Equal(t, "ws://localhost:3000/ws", again[KeyPublicWSURL])
}

func TestAuth_StringRedactsSecret(t *testing.T) {
	cfg, err := Load(baseEnv(map[string]string{KeyAdminCode: "letmein"}), testRoot)
	require.NoError(t, err)

	printed := fmt.Sprint(cfg.Auth())

	assert.NotContains(t, printed, "super-secret")
	assert.NotContains(t, printed, "letmein")
	assert.Contains(t, printed, "hasAdminCode: true")
}
