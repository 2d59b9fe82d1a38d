// Package logging builds the slog loggers used across the CLI.
//
// Two handler formats are supported: a compact console format
// ("ts LEVEL component: msg key=value") and standard JSON. Output goes to
// stdout plus a log file under the configured log directory; CleanupOldLogs
// prunes files past the retention window.
package logging
