// Package robots fetches and evaluates the target site's robots.txt.
//
// The archive respects robots.txt by default even though it is a
// single-operator tool: documentation hosts occasionally disallow
// printable or legacy paths that would pollute the archive anyway.
// The check is advisory and can be disabled with --ignore-robots.
package robots

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"
)

// maxRobotsSize bounds the robots.txt read. Real files are a few KB.
const maxRobotsSize = 512 * 1024

// Rules answers whether a path may be fetched.
type Rules struct {
	group *robotstxt.Group
}

// Fetch retrieves and parses robots.txt for the entry URL's host.
// A missing or unreachable robots.txt yields permissive rules: per the
// robots convention, absence means everything is allowed. Only a parse
// failure of an existing file is reported as an error.
func Fetch(ctx context.Context, client *http.Client, entryURL, userAgent string, logger *slog.Logger) (*Rules, error) {
	u, err := url.Parse(entryURL)
	if err != nil {
		return nil, fmt.Errorf("invalid entry URL: %w", err)
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		logger.Debug("robots.txt unreachable, allowing all", "url", robotsURL, "error", err)
		return allowAll(userAgent), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsSize))
	if err != nil {
		logger.Debug("robots.txt read failed, allowing all", "url", robotsURL, "error", err)
		return allowAll(userAgent), nil
	}

	// FromStatusAndBytes applies the convention: 4xx means no
	// restrictions, 5xx means temporarily disallow everything.
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse robots.txt: %w", err)
	}

	logger.Debug("robots.txt loaded", "url", robotsURL, "status", resp.StatusCode)
	return &Rules{group: data.FindGroup(userAgent)}, nil
}

// Allowed reports whether the given root-relative path may be fetched.
// Nil rules (robots disabled) allow everything.
func (r *Rules) Allowed(path string) bool {
	if r == nil || r.group == nil {
		return true
	}
	return r.group.Test(path)
}

// Parse builds Rules from raw robots.txt content for the given user agent.
func Parse(content, userAgent string) (*Rules, error) {
	data, err := robotstxt.FromString(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse robots.txt: %w", err)
	}
	return &Rules{group: data.FindGroup(userAgent)}, nil
}

// MustParse is Parse for content known to be valid; it panics on error.
func MustParse(content, userAgent string) *Rules {
	r, err := Parse(content, userAgent)
	if err != nil {
		panic(err)
	}
	return r
}

// allowAll returns rules that permit every path.
func allowAll(userAgent string) *Rules {
	data, err := robotstxt.FromBytes(nil)
	if err != nil {
		// Parsing an empty file cannot fail; guard anyway.
		return &Rules{}
	}
	return &Rules{group: data.FindGroup(userAgent)}
}

// DefaultClient returns the HTTP client used for the robots.txt fetch.
// Kept separate from the browser: one tiny text file does not need a
// Chromium navigation.
func DefaultClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
