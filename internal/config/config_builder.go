// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"dario.cat/mergo"
)

// Recognised environment variables.
const (
	KeyWorld               = "WORLD"
	KeyPort                = "PORT"
	KeySaveInterval        = "SAVE_INTERVAL"
	KeyJWTSecret           = "JWT_SECRET"
	KeyPublicAssetsURL     = "PUBLIC_ASSETS_URL"
	KeyPublicAPIURL        = "PUBLIC_API_URL"
	KeyPublicWSURL         = "PUBLIC_WS_URL"
	KeyPublicMaxUploadSize = "PUBLIC_MAX_UPLOAD_SIZE"
	KeyAdminCode           = "ADMIN_CODE"
	KeyCommitHash          = "COMMIT_HASH"
	KeyLiveKitWSURL        = "LIVEKIT_WS_URL"
	KeyLiveKitAPIKey       = "LIVEKIT_API_KEY"
	KeyLiveKitAPISecret    = "LIVEKIT_API_SECRET"

	// PublicPrefix marks variables that are exposed to clients verbatim.
	PublicPrefix = "PUBLIC_"
)

const (
	defaultPort          = "3000"
	defaultSaveInterval  = "60"
	defaultMaxUploadSize = "12"

	assetsDirName      = "assets"
	collectionsDirName = "collections"

	maxPort = 65535
)

// configBuilder resolves the schema step by step. Each step records its
// error and lets the remaining independent steps run, so a single startup
// failure reports every invalid variable at once.
type configBuilder struct {
	env     Environment
	rootDir string

	cfg *Config

	// portResolved guards the steps whose defaults embed the port.
	portResolved bool

	err error
}

func newConfigBuilder(env Environment, rootDir string) *configBuilder {
	return &configBuilder{
		env:     env,
		rootDir: rootDir,
		cfg:     new(Config),
	}
}

func (b *configBuilder) fail(err error) {
	b.err = errors.Join(b.err, err)
}

func (b *configBuilder) build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	return b.cfg, nil
}

func (b *configBuilder) withWorld() *configBuilder {
	raw, _, err := ReadEnv(b.env, KeyWorld, ReadOptions{Required: true})
	if err != nil {
		b.fail(err)
		return b
	}

	name, err := EnsureRelativePath(raw, KeyWorld)
	if err != nil {
		b.fail(err)
		return b
	}

	dir := filepath.Join(b.rootDir, name)
	b.cfg.world = World{
		name:           name,
		dir:            dir,
		assetsDir:      filepath.Join(dir, assetsDirName),
		collectionsDir: filepath.Join(dir, collectionsDirName),
	}

	return b
}

func (b *configBuilder) withPort() *configBuilder {
	raw, _, err := ReadEnv(b.env, KeyPort, ReadOptions{Default: defaultValue(defaultPort)})
	if err != nil {
		b.fail(err)
		return b
	}

	port, err := ParseInteger(raw, KeyPort, IntOptions{Min: bound(1), Max: bound(maxPort)})
	if err != nil {
		b.fail(err)
		return b
	}

	b.cfg.server.port = port
	b.portResolved = true
	return b
}

func (b *configBuilder) withSaveInterval() *configBuilder {
	raw, _, err := ReadEnv(b.env, KeySaveInterval, ReadOptions{Default: defaultValue(defaultSaveInterval)})
	if err != nil {
		b.fail(err)
		return b
	}

	interval, err := ParseInteger(raw, KeySaveInterval, IntOptions{Min: bound(0)})
	if err != nil {
		b.fail(err)
		return b
	}

	b.cfg.server.saveInterval = interval
	return b
}

// withJWTSecret has no default on purpose: a missing secret halts startup.
func (b *configBuilder) withJWTSecret() *configBuilder {
	secret, _, err := ReadEnv(b.env, KeyJWTSecret, ReadOptions{Required: true})
	if err != nil {
		b.fail(err)
		return b
	}

	b.cfg.auth.jwtSecret = secret
	return b
}

func (b *configBuilder) withPublicURLs() *configBuilder {
	port := strconv.Itoa(b.cfg.server.port)

	b.cfg.public.assetsURL = b.resolveURL(KeyPublicAssetsURL, "http://localhost:"+port+"/assets", URLOptions{})
	b.cfg.public.apiURL = b.resolveURL(KeyPublicAPIURL, "http://localhost:"+port+"/api", URLOptions{})
	b.cfg.public.wsURL = b.resolveURL(KeyPublicWSURL, "ws://localhost:"+port+"/ws", URLOptions{Protocols: []string{"ws", "wss"}})

	return b
}

// resolveURL validates key, falling back to fallback only when the port it
// embeds was resolved. Without a port only explicit values are checked.
func (b *configBuilder) resolveURL(key, fallback string, opts URLOptions) string {
	readOpts := ReadOptions{}
	if b.portResolved {
		readOpts.Default = defaultValue(fallback)
	}

	raw, ok, err := ReadEnv(b.env, key, readOpts)
	if err != nil {
		b.fail(err)
		return ""
	}
	if !ok {
		return ""
	}

	normalized, err := NormaliseURL(raw, key, opts)
	if err != nil {
		b.fail(err)
		return ""
	}

	return normalized
}

func (b *configBuilder) withMaxUploadSize() *configBuilder {
	raw, _, err := ReadEnv(b.env, KeyPublicMaxUploadSize, ReadOptions{Default: defaultValue(defaultMaxUploadSize)})
	if err != nil {
		b.fail(err)
		return b
	}

	size, err := ParseInteger(raw, KeyPublicMaxUploadSize, IntOptions{Min: bound(1), DisallowZero: true})
	if err != nil {
		b.fail(err)
		return b
	}

	b.cfg.public.maxUploadSize = size
	return b
}

func (b *configBuilder) withAdminCode() *configBuilder {
	b.cfg.auth.adminCode = b.readOptional(KeyAdminCode)
	return b
}

func (b *configBuilder) withCommitHash() *configBuilder {
	b.cfg.commitHash = b.readOptional(KeyCommitHash)
	return b
}

func (b *configBuilder) withLiveKit() *configBuilder {
	b.cfg.liveKit = LiveKit{
		wsURL:     b.readOptional(KeyLiveKitWSURL),
		apiKey:    b.readOptional(KeyLiveKitAPIKey),
		apiSecret: b.readOptional(KeyLiveKitAPISecret),
	}
	return b
}

// readOptional reads an optional variable that may legitimately be empty.
func (b *configBuilder) readOptional(key string) optional {
	value, ok, err := ReadEnv(b.env, key, ReadOptions{AllowEmpty: true})
	if err != nil {
		b.fail(err)
		return optional{}
	}

	return optional{value: value, set: ok}
}

// withPublicEnv collects every PUBLIC_* variable and overlays the derived
// public values, which take precedence over raw variables of the same name.
func (b *configBuilder) withPublicEnv() *configBuilder {
	publicEnv := make(map[string]string)
	for key, value := range b.env {
		if strings.HasPrefix(key, PublicPrefix) {
			publicEnv[key] = value
		}
	}

	derived := map[string]string{
		KeyPublicAssetsURL:     b.cfg.public.assetsURL,
		KeyPublicAPIURL:        b.cfg.public.apiURL,
		KeyPublicWSURL:         b.cfg.public.wsURL,
		KeyPublicMaxUploadSize: strconv.Itoa(b.cfg.public.maxUploadSize),
	}
	if err := mergo.Merge(&publicEnv, derived, mergo.WithOverride); err != nil {
		b.fail(fmt.Errorf("error merging public env: %w", err))
		return b
	}

	b.cfg.public.env = publicEnv
	return b
}
