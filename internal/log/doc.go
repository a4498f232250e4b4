// Package log builds the application's structured logger on top of the
// standard slog package.
//
// The tool logs to stderr and reserves stdout for the run summary, so
// output can be piped without interleaving. Verbosity is a binary switch:
// Info for normal runs, Debug with --verbose.
package log
