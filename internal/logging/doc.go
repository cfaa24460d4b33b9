// Package logging assembles the structured slog loggers used across moviekit.
//
// A Session is opened once at startup from the loaded config: it writes a
// rotating file under log_dir (lumberjack), optionally mirrors warnings to the
// terminal, and stamps every record with the run identifier. Components derive
// their own loggers with NewComponentLogger; tests use NewNop.
package logging
