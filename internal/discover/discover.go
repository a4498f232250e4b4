package discover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"gitbookpdf/internal/browser"
	"gitbookpdf/internal/mutate"
)

// ErrNotGitBook is returned when the entry page does not carry the GitBook
// root marker. It aborts the run: a marker-less page would yield zero
// links and an empty archive, which is worse than a loud failure.
var ErrNotGitBook = errors.New("entry page is not a GitBook site (root marker not found)")

// GitBook root markers, checked in order. The sidebar testid is present on
// every hosted space; the generator meta tag covers older self-hosted
// builds.
const (
	markerSidebar   = `[data-testid="space.sidebar"]`
	markerGenerator = `meta[name="generator"][content*="GitBook"]`
)

// Discoverer finds every internal page reachable from the entry URL.
// It runs once per archive: one navigation, one expansion pass, one
// extraction.
type Discoverer struct {
	entryURL      string
	rules         []mutate.Rule
	platformCheck bool
	logger        *slog.Logger
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithRules sets the DOM preparation rules. Only the click rules run
// during discovery, so collapsed navigation is expanded before extraction.
func WithRules(rules []mutate.Rule) Option {
	return func(d *Discoverer) {
		d.rules = rules
	}
}

// WithPlatformCheck toggles the GitBook root-marker validation.
// Enabled by default.
func WithPlatformCheck(enabled bool) Option {
	return func(d *Discoverer) {
		d.platformCheck = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Discoverer) {
		d.logger = logger
	}
}

// New creates a Discoverer for the given entry URL.
func New(entryURL string, opts ...Option) *Discoverer {
	d := &Discoverer{
		entryURL:      entryURL,
		rules:         mutate.DefaultRules(),
		platformCheck: true,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover loads the entry page, expands its lazy navigation, and returns
// the distinct set of root-relative hrefs in first-seen order.
//
// Any failure here is fatal to the run: no pages are archived when
// discovery fails. The discovery page is closed before this returns, so
// archiving never runs with two contexts open.
func (d *Discoverer) Discover(ctx context.Context, engine browser.Engine) ([]string, error) {
	page, err := engine.NewPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			d.logger.Warn("failed to close discovery page", "error", err)
		}
	}()

	nav, err := page.Goto(ctx, d.entryURL)
	if err != nil {
		return nil, fmt.Errorf("discovery: failed to load %s: %w", d.entryURL, err)
	}
	if !nav.OK() {
		return nil, fmt.Errorf("discovery: %s returned %s (%d)", d.entryURL, nav.StatusText, nav.Status)
	}

	// Expand collapsed navigation so links hidden behind expandable
	// menus are present in the DOM before extraction.
	if clicks := mutate.ClickRules(d.rules); len(clicks) > 0 {
		if err := page.Evaluate(mutate.Script(clicks)); err != nil {
			return nil, fmt.Errorf("discovery: failed to expand navigation: %w", err)
		}
	}

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("discovery: failed to read rendered page: %w", err)
	}

	if d.platformCheck {
		ok, err := IsGitBook(html)
		if err != nil {
			return nil, fmt.Errorf("discovery: %w", err)
		}
		if !ok {
			return nil, ErrNotGitBook
		}
	}

	links, err := ExtractLinks(html)
	if err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}

	d.logger.Debug("discovery complete", "entryURL", d.entryURL, "links", len(links))
	return links, nil
}

// IsGitBook reports whether the rendered HTML carries a GitBook root marker.
func IsGitBook(html string) (bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false, fmt.Errorf("failed to parse page: %w", err)
	}
	return doc.Find(markerSidebar).Length() > 0 || doc.Find(markerGenerator).Length() > 0, nil
}

// ExtractLinks returns the distinct root-relative hrefs in the rendered
// document, in first-seen order.
//
// Only hrefs beginning with "/" qualify: absolute URLs are external by
// construction, fragments and mailto links carry no path. Protocol-relative
// URLs ("//host/path") also begin with "/" but point off-site, so they are
// excluded explicitly. No normalization happens here; the slug derivation
// in the consumer owns that.
func ExtractLinks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	seen := make(map[string]bool)
	links := make([]string, 0)
	doc.Find(`a[href^="/"]`).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || strings.HasPrefix(href, "//") {
			return
		}
		if seen[href] {
			return
		}
		seen[href] = true
		links = append(links, href)
	})

	return links, nil
}
