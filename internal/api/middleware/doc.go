// Package middleware provides the gin middleware guarding the bridge's
// transport: origin checks, CORS and per-IP rate limiting.
package middleware
