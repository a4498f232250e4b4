package archive

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gitbookpdf/internal/browser"
	"gitbookpdf/internal/config"
	"gitbookpdf/internal/model"
	"gitbookpdf/internal/mutate"
	"gitbookpdf/internal/robots"
	"gitbookpdf/internal/slug"
)

// Archiver renders discovered links to PDF files, one page at a time.
//
// Each link gets a fresh browsing context that is closed before the next
// link begins, so at most one archiving context is ever open. Failures are
// confined to their link: the archiver records them and moves on.
type Archiver struct {
	cfg     *config.Config
	engine  browser.Engine
	baseURL *url.URL
	rules   []mutate.Rule
	robots  *robots.Rules
	logger  *slog.Logger
}

// Option configures an Archiver.
type Option func(*Archiver)

// WithRules sets the DOM preparation rules applied before each render.
func WithRules(rules []mutate.Rule) Option {
	return func(a *Archiver) {
		a.rules = rules
	}
}

// WithRobots sets the robots.txt rules. Links whose path is disallowed
// are skipped before navigation. Nil means no robots filtering.
func WithRobots(r *robots.Rules) Option {
	return func(a *Archiver) {
		a.robots = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Archiver) {
		a.logger = logger
	}
}

// New creates an Archiver. The engine is borrowed, not owned: the caller
// acquires it before discovery and releases it after the run.
func New(cfg *config.Config, engine browser.Engine, opts ...Option) (*Archiver, error) {
	base, err := url.Parse(cfg.EntryURL)
	if err != nil {
		return nil, fmt.Errorf("invalid entry URL: %w", err)
	}

	a := &Archiver{
		cfg:     cfg,
		engine:  engine,
		baseURL: base,
		rules:   mutate.DefaultRules(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// ArchivePage runs the full load-prepare-render-save cycle for one link.
// It never returns an error: any failure is captured in the result and
// logged, keeping the caller's loop a straight iteration.
func (a *Archiver) ArchivePage(ctx context.Context, href string) model.PageResult {
	start := time.Now()
	result := model.PageResult{Href: href}

	// 1. Slug. An empty slug means the href carries no path content;
	// it must never reach the filesystem.
	s, err := slug.FromHref(href)
	if err != nil {
		a.logger.Warn("skipping link with no usable slug", "href", href)
		result.Status = model.StatusSkipped
		result.Error = err.Error()
		result.Elapsed = time.Since(start)
		return result
	}
	result.Slug = s

	// 2. robots.txt, checked before any navigation happens.
	if !a.robots.Allowed(href) {
		a.logger.Warn("skipping link disallowed by robots.txt", "href", href)
		result.Status = model.StatusSkipped
		result.Error = "disallowed by robots.txt"
		result.Elapsed = time.Since(start)
		return result
	}

	outputPath := filepath.Join(a.cfg.OutDir, filepath.FromSlash(s)+".pdf")

	pageURL, err := a.resolve(href)
	if err != nil {
		return a.fail(result, start, err)
	}

	if err := a.renderPage(ctx, pageURL, outputPath, &result); err != nil {
		return a.fail(result, start, err)
	}

	result.Status = model.StatusArchived
	result.OutputPath = outputPath
	result.Elapsed = time.Since(start)
	a.logger.Debug("page archived", "href", href, "path", outputPath, "elapsed", result.Elapsed)
	return result
}

// renderPage performs the browser-facing part of the cycle in a fresh
// browsing context, released on every path.
func (a *Archiver) renderPage(ctx context.Context, pageURL, outputPath string, result *model.PageResult) error {
	page, err := a.engine.NewPage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open browsing context: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			a.logger.Warn("failed to close page", "url", pageURL, "error", err)
		}
	}()

	nav, err := page.Goto(ctx, pageURL)
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	result.HTTPStatus = nav.Status
	if !nav.OK() {
		return fmt.Errorf("page returned %s (%d)", nav.StatusText, nav.Status)
	}

	// Expand collapsed sections, strip chrome, fix timestamps.
	if len(a.rules) > 0 {
		if err := page.Evaluate(mutate.Script(a.rules)); err != nil {
			return fmt.Errorf("page preparation failed: %w", err)
		}
	}

	// The directory is created only now, after the page is confirmed
	// loadable and prepared: dead links must not leave empty directories.
	if err := os.MkdirAll(filepath.Dir(outputPath), 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pdf, err := page.PDF(a.cfg.PDF)
	if err != nil {
		return fmt.Errorf("pdf rendering failed: %w", err)
	}

	if err := os.WriteFile(outputPath, pdf, 0644); err != nil { //nolint:gosec // Archive output is not sensitive
		return fmt.Errorf("failed to write pdf: %w", err)
	}

	return nil
}

// resolve turns a root-relative href into an absolute navigable URL.
func (a *Archiver) resolve(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("unparsable href: %w", err)
	}
	return a.baseURL.ResolveReference(ref).String(), nil
}

// fail finalizes a result as a recoverable per-link failure.
func (a *Archiver) fail(result model.PageResult, start time.Time, err error) model.PageResult {
	a.logger.Error("failed to archive page", "href", result.Href, "error", err)
	result.Status = model.StatusFailed
	result.Error = err.Error()
	result.Elapsed = time.Since(start)
	return result
}
