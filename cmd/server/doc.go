// Package main is the entry point for the host bridge.
//
// The bridge serves a sandboxed front-end bundle from the apps directory and
// executes its filesystem and process syscalls on the host.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Serve ./apps on 127.0.0.1:8000
//	./hostbridge
//
//	# Custom install location, colored debug logs
//	./hostbridge --apps=/opt/bridge/apps --dev
//
//	# Inspect workspace resolution
//	./hostbridge resolve '[home]/notes.txt' '[apps]'
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
