// Package server holds the HTTP server configuration.
//
// The cmd package starts the Fiber application; this package only defines the
// listen port, the API key and the upload body limit, plus small helpers that
// derive Fiber settings from them.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by cmd/start.go to configure Fiber.
package server
