package report

import (
	"bytes"
	"encoding/json"
	"io"

	"gitbookpdf/internal/model"
)

// JSONWriter outputs the run report as indented JSON, for piping into
// other tooling.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report as JSON.
func (w *JSONWriter) Write(report *model.RunReport) (int, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return 0, err
	}

	n, err := w.output.Write(buf.Bytes())
	return n, err
}
