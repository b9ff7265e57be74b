// Package server assembles the host bridge: configuration store, path
// resolver, dispatcher, lifecycle intents and the HTTP/WebSocket transport.
//
// Routes:
//   - GET  /         liveness
//   - GET  /health   status and metrics snapshot
//   - GET  /metrics  Prometheus exposition
//   - POST /syscall  one envelope per request (origin guarded, rate limited)
//   - GET  /bridge   WebSocket, one envelope per text frame (origin guarded)
//   - GET  /apps/*   the front-end bundle
package server
