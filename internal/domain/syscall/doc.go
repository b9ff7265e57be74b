// Package syscall implements the bridge's request router.
//
// A Dispatcher receives one Envelope per request, resolves its virtual paths
// and runs exactly one operation against the host:
//
//   - config: persist and return the configuration document
//   - probe: stat one entry
//   - read: list a directory, read a file, or enumerate drives
//   - write: create or overwrite a file, or create a directory
//   - delete, rename, copy: manipulate entries and trees
//   - run: execute a shell command with a timeout
//   - open: hand a file or URL to the desktop
//
// Dispatch never returns a Go error. Input problems become "illegal path",
// "illegal destination" or "illegal command"; host failures become status
// "err" with the underlying error described in Result.Err. Unresolvable
// paths never reach the filesystem.
//
// Directory and drive listings probe every entry concurrently and join all
// of them before answering. Entries arrive in completion order.
//
// Example Usage:
//
//	d := syscall.NewDispatcher(syscall.Deps{
//		Resolver:   resolver,
//		Store:      store,
//		Classifier: classify.New(0),
//		Platform:   platform.Native(),
//		Logger:     logger,
//	})
//	res := d.Dispatch(ctx, &syscall.Envelope{Syscall: "read", Path: "[home]"})
package syscall
