// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"maps"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Config is the validated, immutable startup configuration of the world
// server. All fields are unexported and exposed through getters returning
// values or copies, so a *Config can be shared freely between goroutines.
//
// A Config is only ever produced by [Load] (or [Get]); the zero value is not
// meaningful.
type Config struct {
	world      World
	server     Server
	auth       Auth
	public     Public
	liveKit    LiveKit
	commitHash optional
}

// optional is a string that may be absent.
type optional struct {
	value string
	set   bool
}

func (o optional) get() (string, bool) {
	return o.value, o.set
}

// World returns the resolved world directory layout.
func (c *Config) World() World { return c.world }

// Server returns the network and persistence settings.
func (c *Config) Server() Server { return c.server }

// Auth returns the authentication settings.
func (c *Config) Auth() Auth { return c.auth }

// Public returns the client-facing settings.
func (c *Config) Public() Public { return c.public }

// LiveKit returns the optional realtime voice integration settings.
func (c *Config) LiveKit() LiveKit { return c.liveKit }

// CommitHash returns the deployed source revision, if one was provided.
func (c *Config) CommitHash() (string, bool) { return c.commitHash.get() }

// MarshalZerologObject writes a redacted summary of the configuration.
// Secrets are reported only as presence flags.
func (c *Config) MarshalZerologObject(e *zerolog.Event) {
	commitHash, _ := c.CommitHash()
	e.Object("world", c.world).
		Object("server", c.server).
		Object("auth", c.auth).
		Object("public", c.public).
		Object("livekit", c.liveKit).
		Str("commit_hash", commitHash)
}

// World describes the on-disk layout of the deployed world.
type World struct {
	name           string
	dir            string
	assetsDir      string
	collectionsDir string
}

// Name is the world path relative to the root directory.
func (w World) Name() string { return w.name }

// Dir is the absolute world directory.
func (w World) Dir() string { return w.dir }

// AssetsDir is the absolute directory holding uploaded assets.
func (w World) AssetsDir() string { return w.assetsDir }

// CollectionsDir is the absolute directory holding app collections.
func (w World) CollectionsDir() string { return w.collectionsDir }

// MarshalZerologObject implements [zerolog.LogObjectMarshaler].
func (w World) MarshalZerologObject(e *zerolog.Event) {
	e.Str("name", w.name).Str("dir", w.dir)
}

// Server holds the listener port and the world save interval.
type Server struct {
	port         int
	saveInterval int
}

// Port is the TCP port the HTTP server listens on, in [1, 65535].
func (s Server) Port() int { return s.port }

// Address is the listen address for [net/http.Server].
func (s Server) Address() string { return ":" + strconv.Itoa(s.port) }

// SaveInterval is the world save period in seconds. Zero disables saving.
func (s Server) SaveInterval() int { return s.saveInterval }

// SaveIntervalDuration is [Server.SaveInterval] as a duration.
func (s Server) SaveIntervalDuration() time.Duration {
	return time.Duration(s.saveInterval) * time.Second
}

// MarshalZerologObject implements [zerolog.LogObjectMarshaler].
func (s Server) MarshalZerologObject(e *zerolog.Event) {
	e.Int("port", s.port).Int("save_interval", s.saveInterval)
}

// Auth holds the token signing secret and the optional admin code.
type Auth struct {
	jwtSecret string
	adminCode optional
}

// JWTSecret is the HMAC key used to sign and verify tokens. Never log it.
func (a Auth) JWTSecret() string { return a.jwtSecret }

// AdminCode returns the admin code and whether the variable was set.
// A set but empty code is returned as ("", true).
func (a Auth) AdminCode() (string, bool) { return a.adminCode.get() }

// HasAdminCode reports whether a non-empty admin code is configured.
func (a Auth) HasAdminCode() bool { return a.adminCode.set && a.adminCode.value != "" }

// String hides the secrets when the record is printed.
func (a Auth) String() string {
	return "Auth{jwtSecret: [redacted], hasAdminCode: " + strconv.FormatBool(a.HasAdminCode()) + "}"
}

// MarshalZerologObject implements [zerolog.LogObjectMarshaler].
func (a Auth) MarshalZerologObject(e *zerolog.Event) {
	e.Bool("has_admin_code", a.HasAdminCode())
}

// Public holds the values that are safe to expose to clients.
type Public struct {
	assetsURL     string
	apiURL        string
	wsURL         string
	maxUploadSize int
	env           map[string]string
}

// AssetsURL is the base URL assets are served from, without a trailing slash.
func (p Public) AssetsURL() string { return p.assetsURL }

// APIURL is the base URL of the HTTP API, without a trailing slash.
func (p Public) APIURL() string { return p.apiURL }

// WSURL is the WebSocket endpoint, without a trailing slash.
func (p Public) WSURL() string { return p.wsURL }

// MaxUploadSize is the upload limit in megabytes.
func (p Public) MaxUploadSize() int { return p.maxUploadSize }

// MaxUploadBytes is the upload limit in bytes.
func (p Public) MaxUploadBytes() int64 { return int64(p.maxUploadSize) * 1024 * 1024 }

// Env returns a copy of the public environment: every PUBLIC_* variable
// overlaid with the derived public values.
func (p Public) Env() map[string]string { return maps.Clone(p.env) }

// MarshalZerologObject implements [zerolog.LogObjectMarshaler].
func (p Public) MarshalZerologObject(e *zerolog.Event) {
	e.Str("assets_url", p.assetsURL).
		Str("api_url", p.apiURL).
		Str("ws_url", p.wsURL).
		Int("max_upload_size", p.maxUploadSize)
}

// LiveKit holds the optional voice chat integration credentials.
type LiveKit struct {
	wsURL     optional
	apiKey    optional
	apiSecret optional
}

func (l LiveKit) WSURL() (string, bool)     { return l.wsURL.get() }
func (l LiveKit) APIKey() (string, bool)    { return l.apiKey.get() }
func (l LiveKit) APISecret() (string, bool) { return l.apiSecret.get() }

// Enabled reports whether all three LiveKit settings are present.
func (l LiveKit) Enabled() bool {
	return l.wsURL.set && l.apiKey.set && l.apiSecret.set
}

// MarshalZerologObject implements [zerolog.LogObjectMarshaler].
func (l LiveKit) MarshalZerologObject(e *zerolog.Event) {
	wsURL, _ := l.WSURL()
	e.Bool("enabled", l.Enabled()).Str("ws_url", wsURL)
}
