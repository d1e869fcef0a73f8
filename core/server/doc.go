// Package server holds configuration for the HTTP server.
//
// The configuration covers the listen port and the optional API key that the
// auth middleware enforces on every request.
package server
