// Package fetch retrieves the source solar-disk image over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// UpstreamError reports a failed fetch: either a transport failure or a
// non-2xx response. It is terminal; the pipeline never retries.
type UpstreamError struct {
	URL        string
	Status     int    // 0 when the request never got a response
	StatusText string // upstream reason phrase, or transport error text
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream fetch %s failed: %s", e.URL, e.StatusText)
	}
	return fmt.Sprintf("upstream fetch %s failed: %d %s", e.URL, e.Status, e.StatusText)
}

// Client fetches images from the upstream archive. The zero value is not
// usable; construct with NewClient.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient builds a fetch client with the given request timeout and
// User-Agent header. Redirects are followed (default http.Client policy).
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch GETs the URL and returns the response body. A transport failure
// or a non-2xx status yields an *UpstreamError; the body of a failed
// response is discarded.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{URL: url, StatusText: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			URL:        url,
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{URL: url, StatusText: err.Error()}
	}
	return body, nil
}

// SourceURL expands a URL template for a given observation date. The
// template's "{date}" placeholder is replaced by the date formatted with
// the given Go time layout (e.g. "2006/01/02"); the filename part of the
// template stays fixed.
func SourceURL(template, dateLayout string, t time.Time) string {
	return strings.ReplaceAll(template, "{date}", t.Format(dateLayout))
}
