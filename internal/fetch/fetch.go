package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Source provides the current markup of a document.
// Any failure (network error, timeout, non-success status) is reported as a
// single generic error; the analysis task treats all of them the same way.
type Source interface {
	// Fetch returns the markup of the referenced document.
	Fetch(ctx context.Context, documentURL string) (string, error)
}

// ErrFetchFailed wraps every non-success fetch outcome. Callers that only
// care whether the fetch succeeded can match on it with errors.Is.
var ErrFetchFailed = errors.New("failed to fetch document markup")

// Default fetcher settings.
const (
	// DefaultTimeout bounds one fetch round trip. Previews are served by the
	// same application that triggers the audit, so a short timeout is enough.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize limits the response body size. 5MB covers any
	// realistic rendered document while preventing memory exhaustion.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultUserAgent identifies the auditor in HTTP requests.
	DefaultUserAgent = "mindfula11y/1.0 (+https://github.com/crinis/mindfula11y-sub001)"
)

// HTTPSource fetches document markup over HTTP.
type HTTPSource struct {
	// client performs the requests.
	client *http.Client

	// userAgent is the User-Agent header to send.
	userAgent string

	// maxBodySize limits how much of the response body is read.
	maxBodySize int64

	// headers are extra request headers, typically authentication for the
	// preview endpoint.
	headers map[string]string

	// cookie is an optional Cookie header value.
	cookie string
}

// Option configures an HTTPSource.
type Option func(*HTTPSource)

// WithClient sets a custom HTTP client.
func WithClient(client *http.Client) Option {
	return func(s *HTTPSource) {
		s.client = client
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *HTTPSource) {
		s.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(s *HTTPSource) {
		if size > 0 {
			s.maxBodySize = size
		}
	}
}

// WithHeaders sets extra request headers.
func WithHeaders(headers map[string]string) Option {
	return func(s *HTTPSource) {
		s.headers = headers
	}
}

// WithCookie sets the Cookie header value.
func WithCookie(cookie string) Option {
	return func(s *HTTPSource) {
		s.cookie = cookie
	}
}

// NewHTTPSource creates an HTTPSource with the given options.
func NewHTTPSource(opts ...Option) *HTTPSource {
	s := &HTTPSource{
		client:      &http.Client{Timeout: DefaultTimeout},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch retrieves the markup at documentURL.
// Redirects are followed by the underlying client; any transport error or
// non-2xx status resolves to an error wrapping ErrFetchFailed.
func (s *HTTPSource) Fetch(ctx context.Context, documentURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, documentURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}
	if s.cookie != "" {
		req.Header.Set("Cookie", s.cookie)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	return string(body), nil
}
