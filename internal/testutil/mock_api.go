// Package testutil provides a configurable mock of the Token Metrics
// upstream API for tests.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// RecordedRequest captures one request the mock received.
type RecordedRequest struct {
	Path   string
	Query  url.Values
	Header http.Header
}

// MockAPI is a configurable mock upstream server with request tracking.
type MockAPI struct {
	server    *httptest.Server
	mu        sync.RWMutex
	responses map[string]MockResponse
	requests  []RecordedRequest
}

// NewMockAPI creates a mock upstream. Endpoints without a configured
// response answer 200 with an empty data document.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		responses: make(map[string]MockResponse),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requests = append(mock.requests, RecordedRequest{
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
		})
		response, configured := mock.responses[r.URL.Path]
		mock.mu.Unlock()

		if !configured {
			response = MockResponse{StatusCode: http.StatusOK, Body: `{"data":[]}`}
		}

		if response.Delay > 0 {
			time.Sleep(response.Delay)
		}
		for key, value := range response.Headers {
			w.Header().Set(key, value)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(response.StatusCode)
		io.WriteString(w, response.Body)
	}))

	return mock
}

// SetResponse configures the response for an endpoint path (e.g.
// "/daily-ohlcv").
func (m *MockAPI) SetResponse(path string, response MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[path] = response
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// RequestCount returns the number of requests received.
func (m *MockAPI) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// Requests returns a copy of all recorded requests.
func (m *MockAPI) Requests() []RecordedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RecordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// Reset clears recorded requests and configured responses.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.responses = make(map[string]MockResponse)
}
