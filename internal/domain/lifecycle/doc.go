// Package lifecycle answers the window intents that share the syscall
// transport: appInfo, close, closeAll and quit.
//
// The bridge has no window chrome of its own. It records what the front-end
// reports (title, unsaved changes) so close requests can be answered, and
// turns quit into a graceful shutdown of the process.
package lifecycle
