// Package http implements the HTTP surface of the world server that consumes
// the startup configuration.
//
// It exposes the public environment to clients, reports the deployed commit,
// exchanges the admin code for a signed token and accepts asset uploads into
// the world's assets directory. Request tracing, access logging and
// authentication are handled as middleware.
package http
