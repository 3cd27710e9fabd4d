// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/dat-filter/pkg/types"
)

// ErrNotFound reports an HTTP 404 for a fetched page. Callers treat it as a
// tolerated per-source failure rather than a hard error.
var ErrNotFound = errors.New("page not found")

// defaultUserAgent is sent when the configuration leaves UserAgent empty.
// Recommendation wikis answer 403 to the stock Go agent.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// NewClient builds the HTTP client used for page fetches.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = types.DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// UserAgent resolves the configured agent string or the browser-style default.
func UserAgent(cfg types.HTTPConfig) string {
	if cfg.UserAgent != "" {
		return cfg.UserAgent
	}
	return defaultUserAgent
}

// FetchPage performs a single GET of url and returns the response body.
// There is deliberately no retry: a source either answers on the first
// attempt or is excluded from the run. A 404 is reported as ErrNotFound;
// any other non-2xx status is an ordinary error.
func FetchPage(ctx context.Context, client *http.Client, url, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return body, nil
}
