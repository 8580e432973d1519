// Package logging builds the slog loggers used across librarian, with a
// compact console handler for terminals and a JSON handler for machine
// consumption, optionally teed to the work-directory log file.
package logging
