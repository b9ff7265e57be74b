// Package logging builds the bridge's zap logger.
//
// The level comes from LOG_LEVEL or --log-level. LOG_DEV or --dev switches
// from JSON lines to a colored console encoder and enables stack traces on
// errors. Output goes to stderr unless Config.Writer says otherwise, so
// stdout stays free for subcommands such as resolve.
//
// Each part of the bridge logs through a child logger:
//
//	logger, err := logging.New(logging.Config{Level: "debug"})
//	dispatcher := logger.Component("dispatcher")
//	dispatcher.Debug("Dispatching syscall", zap.String("syscall", "read"))
//
// In JSON mode the child name is written under the "component" key.
package logging
