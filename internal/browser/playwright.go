package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"gitbookpdf/internal/config"
)

// PlaywrightEngine drives headless Chromium through the Playwright driver.
// The driver binary is installed on first use under the XDG cache
// directory so later runs skip the download.
type PlaywrightEngine struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	timeout time.Duration
	closed  bool
}

// Launch installs the driver if needed, starts it, and launches Chromium.
// The returned engine must be closed by the caller; Close is idempotent.
func Launch(cfg *config.Config) (*PlaywrightEngine, error) {
	runOpts := &playwright.RunOptions{
		DriverDirectory: config.XDGCacheDir(),
		Browsers:        []string{"chromium"},
	}

	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install browser driver: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start browser driver: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(!cfg.Headful),
	})
	if err != nil {
		_ = pw.Stop() //nolint:errcheck // Best effort cleanup
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(cfg.UserAgent),
	})
	if err != nil {
		_ = b.Close()  //nolint:errcheck // Best effort cleanup
		_ = pw.Stop()  //nolint:errcheck // Best effort cleanup
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	return &PlaywrightEngine{
		pw:      pw,
		browser: b,
		context: bctx,
		timeout: cfg.Timeout,
	}, nil
}

// NewPage opens a fresh tab in the shared browser context.
func (e *PlaywrightEngine) NewPage(_ context.Context) (Page, error) {
	p, err := e.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &playwrightPage{page: p, timeout: e.timeout}, nil
}

// Close tears down the context, browser, and driver in order.
// The first error encountered is returned but teardown continues.
func (e *PlaywrightEngine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	var firstErr error
	if err := e.context.Close(); err != nil {
		firstErr = err
	}
	if err := e.browser.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := e.pw.Stop(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// playwrightPage adapts a playwright.Page to the Page interface.
type playwrightPage struct {
	page    playwright.Page
	timeout time.Duration
}

// Goto navigates and waits for the load lifecycle event.
// A driver timeout surfaces as an ordinary navigation error.
func (p *playwrightPage) Goto(ctx context.Context, url string) (*Navigation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(p.timeout.Milliseconds())),
	})
	if err != nil {
		return nil, err
	}

	// Same-document navigation returns no response object.
	if resp == nil {
		return &Navigation{Status: 200, StatusText: "OK"}, nil
	}

	return &Navigation{Status: resp.Status(), StatusText: resp.StatusText()}, nil
}

// Evaluate runs a script in the page, discarding its return value.
func (p *playwrightPage) Evaluate(script string) error {
	_, err := p.page.Evaluate(script)
	return err
}

// Content returns the rendered HTML.
func (p *playwrightPage) Content() (string, error) {
	return p.page.Content()
}

// PDF renders the page to PDF bytes.
func (p *playwrightPage) PDF(opts config.PDFOptions) ([]byte, error) {
	return p.page.PDF(playwright.PagePdfOptions{
		Width:           playwright.String(opts.Width),
		Height:          playwright.String(opts.Height),
		Scale:           playwright.Float(opts.Scale),
		PrintBackground: playwright.Bool(true),
		Margin: &playwright.Margin{
			Top:    playwright.String(opts.Margin),
			Right:  playwright.String(opts.Margin),
			Bottom: playwright.String(opts.Margin),
			Left:   playwright.String(opts.Margin),
		},
	})
}

// Close releases the browsing context.
func (p *playwrightPage) Close() error {
	return p.page.Close()
}
