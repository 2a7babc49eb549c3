// Package log constructs the loggers used across the application,
// built on top of the standard slog package.
//
// Log levels follow the CLI's verbosity flag: Warn by default so that
// normal runs stay quiet, Debug with --verbose so that sync progress
// and per-round fetch results become visible.
//
// # Usage
//
//	// Create a logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("fetched draw", "draw_no", 1105)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
