package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The PDF defaults mirror a portrait viewport that renders GitBook article
// columns without horizontal clipping.
const (
	// DefaultOutDir is the directory PDFs are written under when the
	// operator does not supply --outDir.
	DefaultOutDir = "pages"

	// DefaultTimeoutSeconds is the per-navigation timeout. 30 seconds is
	// generous for GitBook pages, which are static content behind a CDN;
	// slower than that usually indicates a dead link.
	DefaultTimeoutSeconds = 30.0

	// DefaultPDFWidth is the rendered page width.
	DefaultPDFWidth = "1080px"

	// DefaultPDFHeight is the rendered page height.
	DefaultPDFHeight = "1920px"

	// DefaultPDFScale shrinks the render slightly so wide code blocks
	// fit inside the page margins.
	DefaultPDFScale = 0.9

	// DefaultPDFMargin is applied uniformly to all four page edges.
	DefaultPDFMargin = "20px"

	// DefaultUserAgent identifies gitbookpdf in HTTP requests and is the
	// user-agent group consulted in robots.txt.
	DefaultUserAgent = "gitbookpdf/1.0"

	// AppName is the application name used for XDG directory paths.
	AppName = "gitbookpdf"
)

// PDFOptions holds the rendering options passed to the browser's PDF call.
// Width, Height, and Margin are CSS-style length strings because that is
// the unit the rendering engine accepts.
type PDFOptions struct {
	// Width is the page width (e.g. "1080px", "21cm").
	Width string `yaml:"width,omitempty"`

	// Height is the page height.
	Height string `yaml:"height,omitempty"`

	// Scale is the rendering zoom factor, in (0, 2].
	Scale float64 `yaml:"scale,omitempty"`

	// Margin is applied to all four page edges.
	Margin string `yaml:"margin,omitempty"`
}

// DefaultPDFOptions returns the PDF rendering defaults.
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		Width:  DefaultPDFWidth,
		Height: DefaultPDFHeight,
		Scale:  DefaultPDFScale,
		Margin: DefaultPDFMargin,
	}
}

// Config holds all configuration options for one archive run.
// It is populated from CLI flags (plus an optional YAML file) once at
// startup and never mutated afterwards.
//
// Design decision: We use a single flat struct instead of nested structs
// because the number of options is manageable, and nesting would add
// complexity without significant benefit.
type Config struct {
	// EntryURL is the starting page to crawl. All discovered links are
	// resolved relative to it. Must be an absolute http(s) URL.
	EntryURL string

	// OutDir is the directory PDFs are written under, one file per
	// discovered link at <OutDir>/<slug>.pdf.
	OutDir string

	// Timeout bounds each page navigation. A navigation that exceeds it
	// is treated like any other navigation failure.
	Timeout time.Duration

	// PDF holds the rendering options for every archived page.
	PDF PDFOptions

	// Verbose enables debug-level log output.
	Verbose bool

	// IgnoreRobots disables the robots.txt check before archiving links.
	IgnoreRobots bool

	// SkipPlatformCheck disables the GitBook root-marker validation on
	// the entry page. When false (default), a page without the marker
	// aborts the run before any archiving happens.
	SkipPlatformCheck bool

	// Headful launches a visible browser window instead of headless
	// Chromium. Useful when debugging selector drift.
	Headful bool

	// ConfigFilePath is the path to the YAML configuration file.
	// If empty, the tool searches the current directory and then the
	// XDG config directory.
	ConfigFilePath string

	// ReportFile is the output file path for the run report.
	// When set, the report is written to this file instead of a one-line
	// summary to stdout. Directories are created if they don't exist.
	ReportFile string

	// JSONReport switches the run report from Markdown to JSON.
	JSONReport bool

	// UserAgent is the User-Agent the browser context identifies as.
	UserAgent string
}

// NewConfig creates a new Config with default values.
// Users override specific values after creation, then call Validate.
func NewConfig() *Config {
	return &Config{
		OutDir:    DefaultOutDir,
		Timeout:   time.Duration(DefaultTimeoutSeconds * float64(time.Second)),
		PDF:       DefaultPDFOptions(),
		UserAgent: DefaultUserAgent,
	}
}

// SetTimeoutSeconds converts an operator-supplied timeout in seconds to
// the internal duration. Negative values are rejected by Validate.
func (c *Config) SetTimeoutSeconds(seconds float64) {
	c.Timeout = time.Duration(seconds * float64(time.Second))
}

// XDGConfigDir returns the XDG config directory for gitbookpdf.
// On Linux: ~/.config/gitbookpdf
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for gitbookpdf.
// The browser driver is installed here so repeated runs reuse it.
// On Linux: ~/.cache/gitbookpdf
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It is called once after CLI parsing, before any network activity,
// and returns the first error found.
func (c *Config) Validate() error {
	if c.EntryURL == "" {
		return ErrNoEntryURL
	}

	u, err := url.Parse(c.EntryURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidEntryURL
	}

	if c.OutDir == "" {
		return ErrNoOutputDir
	}

	// Zero is allowed: the rendering engine interprets it as "no limit".
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.PDF.Scale <= 0 || c.PDF.Scale > 2 {
		return ErrInvalidScale
	}

	return nil
}
