package report

import (
	"fmt"
	"io"
	"time"

	"gitbookpdf/internal/model"
)

// Writer defines the interface for run report output.
// Implementations render the same RunReport in different formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files or stdout with the
// same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.RunReport) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// SimpleWriter outputs a short human-readable summary, the default when
// no report file is requested.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary: one line of counts, then one line per failure.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	total := 0

	n, err := fmt.Fprintf(w.output, "Archived %d of %d pages to %s in %s (%d skipped, %d failed)\n",
		report.ArchivedCount(), report.Discovered, report.OutDir,
		report.Elapsed.Round(time.Millisecond), report.SkippedCount(), report.FailedCount())
	total += n
	if err != nil {
		return total, err
	}

	for _, failure := range report.Failures() {
		n, err := fmt.Fprintf(w.output, "  failed: %s (%s)\n", failure.Href, failure.Error)
		total += n
		if err != nil {
			return total, err
		}
	}

	return total, nil
}
