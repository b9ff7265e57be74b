// Package platform isolates everything that differs between host operating
// systems: path style, drive enumeration, recursive tree removal and copy,
// the command shell, and handing files or URLs to the desktop.
//
// Two implementations exist. Posix drives rm, cp, sh and xdg-open (or open on
// macOS). Windows drives fsutil, rmdir, xcopy, cmd and rundll32. Both compile
// everywhere so their command construction can be tested on any host; Native
// picks the one matching the build target.
//
// When a native tree tool is missing from PATH, RemoveTree falls back to
// os.RemoveAll and CopyTree to an in-process copy walked with fastwalk.
package platform
