// Package vpath translates between virtual paths used by the sandboxed
// front-end and real paths on the host.
//
// A virtual path uses forward slashes and may start with exactly one
// workspace token:
//
//	[home]/Documents/notes.txt
//	[apps]/index.html
//	/C-drive/Users/me          (drive root form on Windows hosts)
//
// Tokens are looked up in the workspace table. A table target may itself
// start with a token, so resolution repeats until the path no longer starts
// with one. An unknown token aborts the whole resolution.
//
// Every "/.." substring is deleted rather than resolved, so a caller cannot
// climb out of a workspace with relative segments.
//
// Example Usage:
//
//	r := vpath.NewResolver(vpath.Slash, func() vpath.Table { return store.Workspaces() })
//	real, ok := r.Resolve("[home]/Documents")
//	virtual := r.ToVirtual(real, true)
package vpath
