// Package server holds the HTTP server configuration.
//
// The `serve` command exposes the reconciliation engine over HTTP. This package
// defines the settings it reads: listen port, API key and request body limit.
package server
