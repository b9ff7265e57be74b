// Package ws serves the bridge protocol over WebSocket.
//
// Each text frame carries one envelope. Envelopes on a connection are
// processed concurrently and replies are written in completion order, so
// clients correlate replies by the keys they sent.
package ws
