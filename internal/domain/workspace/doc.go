// Package workspace persists the bridge configuration document and the
// ordered workspace table that maps names such as "home" and "apps" to host
// directories.
//
// The document lives at <apps>/config.json. Unknown top-level keys written by
// the front-end are kept verbatim. Every load re-asserts the runtime values of
// appsUrl, workspaces.home and workspaces.apps, writing the corrected document
// back when it came from disk.
//
// Example Usage:
//
//	store := workspace.NewStore("/opt/bridge/apps", "http://127.0.0.1:8000/apps/", logger)
//	doc, _ := store.Get()
//	target, ok := doc.Workspaces.Lookup("home")
package workspace
