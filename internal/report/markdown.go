package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"gitbookpdf/internal/model"
)

// MarkdownWriter outputs the run report in Markdown format, suitable for
// keeping next to the archived PDFs as a manifest of what a run produced.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writePages(md, report)
	w.writeFailures(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the run summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("Archive Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Site", "`" + report.EntryURL + "`"},
			{"Output", "`" + report.OutDir + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Elapsed.Round(time.Millisecond).String()},
			{"Discovered", strconv.Itoa(report.Discovered)},
			{"Archived", strconv.Itoa(report.ArchivedCount())},
			{"Skipped", strconv.Itoa(report.SkippedCount())},
			{"Failed", strconv.Itoa(report.FailedCount())},
		},
	})
	md.PlainText("")
}

// writePages writes the per-page table for archived pages.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Archived Pages")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Pages))
	for _, p := range report.Pages {
		if !p.Archived() {
			continue
		}
		rows = append(rows, []string{
			"`" + p.Href + "`",
			"`" + p.OutputPath + "`",
			p.Elapsed.Round(time.Millisecond).String(),
		})
	}

	if len(rows) == 0 {
		md.PlainText("No pages were archived.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Link", "File", "Render Time"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures writes the failures and skips section, omitted when clean.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.RunReport) {
	if report.FailedCount() == 0 && report.SkippedCount() == 0 {
		return
	}

	md.H2("Not Archived")
	md.PlainText("")

	rows := make([][]string, 0)
	for _, p := range report.Pages {
		if p.Archived() {
			continue
		}
		rows = append(rows, []string{"`" + p.Href + "`", p.Status.String(), p.Error})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Link", "Status", "Cause"},
		Rows:   rows,
	})
	md.PlainText("")
}
