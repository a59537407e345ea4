// Package server runs the world HTTP server.
//
// It owns the server lifecycle: binding the configured address, serving
// until a stop signal arrives, and shutting down gracefully so in-flight
// requests can finish.
package server
