// Package testutil provides fixtures and fakes for site-paginate tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// MockFeedResponse defines the behavior of one mock feed endpoint.
type MockFeedResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockFeedServer is a configurable HTTP server that serves feeds.
type MockFeedServer struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	requestCount int
}

// NewMockFeedServer creates a mock feed server. Unknown paths return 404.
func NewMockFeedServer() *MockFeedServer {
	mock := &MockFeedServer{
		handlers: make(map[string]http.HandlerFunc),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requestCount++
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if !exists {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))

	return mock
}

// URL returns the server URL joined with path.
func (m *MockFeedServer) URL(path string) string {
	return m.server.URL + path
}

// Close shuts down the mock server.
func (m *MockFeedServer) Close() {
	m.server.Close()
}

// SetHandler sets a custom handler for a path.
func (m *MockFeedServer) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures the response for a path.
func (m *MockFeedServer) SetResponse(path string, resp MockFeedResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}
		WriteResponse(w, resp)
	})
}

// WriteResponse writes resp to w.
func WriteResponse(w http.ResponseWriter, resp MockFeedResponse) {
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		_, _ = w.Write([]byte(resp.Body))
	}
}

// RequestCount returns the number of requests served.
func (m *MockFeedServer) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// NewRSSResponse creates a 200 OK response carrying body as RSS.
func NewRSSResponse(body string) MockFeedResponse {
	return MockFeedResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": "application/rss+xml; charset=utf-8",
		},
	}
}

// NewRateLimitResponse creates a 429 Too Many Requests response.
func NewRateLimitResponse() MockFeedResponse {
	return MockFeedResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       "slow down",
		Headers:    map[string]string{"Retry-After": "1"},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockFeedResponse {
	return MockFeedResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       "internal server error",
	}
}

// FeedEntry is one entry of a generated RSS document.
type FeedEntry struct {
	GUID       string
	Link       string
	Title      string
	Categories []string
}

// RSS renders entries as an RSS 2.0 document.
func RSS(entries ...FeedEntry) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0"><channel><title>Test feed</title><link>https://example.com/</link>` + "\n")
	for _, e := range entries {
		b.WriteString("<item>")
		fmt.Fprintf(&b, "<title>%s</title>", e.Title)
		if e.Link != "" {
			fmt.Fprintf(&b, "<link>%s</link>", e.Link)
		}
		if e.GUID != "" {
			fmt.Fprintf(&b, "<guid>%s</guid>", e.GUID)
		}
		for _, c := range e.Categories {
			fmt.Fprintf(&b, "<category>%s</category>", c)
		}
		b.WriteString("</item>\n")
	}
	b.WriteString("</channel></rss>\n")
	return b.String()
}
