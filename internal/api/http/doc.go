// Package http provides the bridge's plain HTTP endpoints.
//
// POST /syscall accepts one envelope per request for callers that cannot hold
// a WebSocket open. The reply body is the same object the WebSocket transport
// would send.
package http
