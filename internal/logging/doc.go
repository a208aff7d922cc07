// Package logging assembles structured slog loggers and formatting helpers used
// across the simradio commands.
//
// It owns the console and JSON handlers, the rotating file sink, and the
// context helpers that tag log lines with track, track list, stage, and run
// identifiers. Pipeline packages receive a *slog.Logger and derive component
// loggers with NewComponentLogger; tests use NewNop.
package logging
