// Package logging builds the slog handlers behind the ersm CLI's
// --verbose, --quiet, --log-format, and --log-file flags.
//
// [Handler] renders colorized single-line records for terminals,
// [MultiHandler] fans records out when a log file is configured, and
// [NewContext]/[FromContext] pass the configured logger from the root
// command down to the backup engine. Tests use [ForTest] so log output
// only surfaces on failure or under go test -v.
package logging
