// Package logging provides structured logging for CRM Core on top of log/slog.
//
// Output goes to stdout, stderr, or a size-rotated file (lumberjack). Every
// record carries the service name and version as default attributes.
package logging
