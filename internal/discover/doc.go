// Package discover implements the one-time discovery phase: load the
// entry page, expand its lazy-rendered navigation, validate that the site
// is actually a GitBook space, and extract the deduplicated set of
// internal links to archive.
//
// Extraction and validation operate on the rendered HTML string, so they
// are pure and testable without a browser; only the navigation step
// touches the browsing engine.
package discover
