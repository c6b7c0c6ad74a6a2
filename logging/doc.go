// Package logging builds the slog loggers used across the settings packages.
// Output is JSON by default; text output is available for terminals.
package logging
