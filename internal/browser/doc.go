// Package browser wraps the headless browsing engine behind narrow
// interfaces.
//
// The tool delegates all page loading, DOM mutation, and PDF encoding to
// Playwright-driven Chromium; this package is the only one that imports
// the automation library. Engine is the run-scoped resource (one browser
// per run, released exactly once), Page is the per-link browsing context.
//
// The interfaces exist for the fakes in the discover and archive tests as
// much as for the production implementation.
package browser
