package browser

import (
	"context"

	"gitbookpdf/internal/config"
)

// Engine is the headless browsing engine shared by one run.
// It is acquired once by the orchestrator and released exactly once at the
// end of the run, on success and failure paths alike.
//
// Design decision: We define narrow interfaces over the automation library
// rather than using it directly because:
//  1. The discoverer and archiver become testable with in-memory fakes
//  2. Everything the rest of the tool needs from a browser is visible here
//  3. Swapping the automation backend touches only this package
type Engine interface {
	// NewPage opens a fresh browsing context.
	NewPage(ctx context.Context) (Page, error)

	// Close releases the engine. Safe to call once; the orchestrator
	// guarantees it runs on every exit path.
	Close() error
}

// Page is a single browsing context. Every archived link gets its own
// Page, which is closed before the next link begins.
type Page interface {
	// Goto navigates to the URL and waits for the load event, bounded
	// by the configured per-navigation timeout. The returned Navigation
	// carries the response status; a timeout or network error is
	// returned as an error.
	Goto(ctx context.Context, url string) (*Navigation, error)

	// Evaluate runs a script in the page.
	Evaluate(script string) error

	// Content returns the rendered document's HTML.
	Content() (string, error)

	// PDF renders the current page to PDF bytes with the given options.
	PDF(opts config.PDFOptions) ([]byte, error)

	// Close releases the browsing context.
	Close() error
}

// Navigation is the result of a page navigation.
type Navigation struct {
	// Status is the HTTP response status code.
	Status int

	// StatusText is the response status line text (e.g. "Not Found").
	StatusText string
}

// OK reports whether the navigation got a 2xx response.
func (n *Navigation) OK() bool {
	return n.Status >= 200 && n.Status < 300
}
