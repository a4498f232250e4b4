// Package report renders the outcome of an archive run.
//
// Three writers share one interface: SimpleWriter prints a terminal
// summary (the default), MarkdownWriter produces a manifest suitable for
// keeping next to the archived PDFs, and JSONWriter emits the raw report
// for other tooling.
package report
