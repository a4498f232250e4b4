package log

import (
	"io"
	"log/slog"
)

// New creates the logger used throughout a run.
//
// Progress and per-link outcomes log at Info so a default run shows what
// is happening; verbose adds the Debug detail (selector scripts, robots
// decisions, timings). Log output goes to the writer (stderr in
// production) so stdout stays clean for the run summary.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
