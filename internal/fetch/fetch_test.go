package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestHTTPSourceFetch tests markup retrieval over HTTP.
func TestHTTPSourceFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns the response body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html><body><h1>Hi</h1></body></html>"))
		}))
		defer server.Close()

		source := NewHTTPSource()
		markup, err := source.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(markup, "<h1>Hi</h1>") {
			t.Errorf("unexpected markup: %q", markup)
		}
	})

	t.Run("sends user agent, headers, and cookie", func(t *testing.T) {
		t.Parallel()

		var gotUA, gotAuth, gotCookie string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotAuth = r.Header.Get("Authorization")
			gotCookie = r.Header.Get("Cookie")
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		source := NewHTTPSource(
			WithUserAgent("test-agent"),
			WithHeaders(map[string]string{"Authorization": "Bearer abc"}),
			WithCookie("session=xyz"),
		)
		if _, err := source.Fetch(context.Background(), server.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotUA != "test-agent" {
			t.Errorf("User-Agent = %q, want %q", gotUA, "test-agent")
		}
		if gotAuth != "Bearer abc" {
			t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer abc")
		}
		if gotCookie != "session=xyz" {
			t.Errorf("Cookie = %q, want %q", gotCookie, "session=xyz")
		}
	})

	t.Run("non-2xx status wraps ErrFetchFailed", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		}))
		defer server.Close()

		source := NewHTTPSource()
		_, err := source.Fetch(context.Background(), server.URL)
		if !errors.Is(err, ErrFetchFailed) {
			t.Errorf("expected ErrFetchFailed, got %v", err)
		}
	})

	t.Run("transport error wraps ErrFetchFailed", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close() // connection refused from here on

		source := NewHTTPSource()
		_, err := source.Fetch(context.Background(), server.URL)
		if !errors.Is(err, ErrFetchFailed) {
			t.Errorf("expected ErrFetchFailed, got %v", err)
		}
	})

	t.Run("body is clamped to the configured limit", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 1024)))
		}))
		defer server.Close()

		source := NewHTTPSource(WithMaxBodySize(100))
		markup, err := source.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(markup) != 100 {
			t.Errorf("expected 100 bytes, got %d", len(markup))
		}
	})

	t.Run("cancelled context aborts the fetch", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		source := NewHTTPSource()
		_, err := source.Fetch(ctx, server.URL)
		if !errors.Is(err, ErrFetchFailed) {
			t.Errorf("expected ErrFetchFailed, got %v", err)
		}
	})
}
