package client

import (
	"fmt"
	"net/http"
)

// ErrorClass represents a classification of request errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents network/transport errors.
	ErrorClassNetwork ErrorClass = "network"
)

// APIError is the structured failure returned for any transport error or
// HTTP status >= 400. It carries the upstream status, headers, and body
// text for diagnostics. The paginator propagates it unmodified; there is
// no automatic retry.
type APIError struct {
	StatusCode int
	Header     http.Header
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tokenmetrics %s error: %v", e.Class(), e.Err)
	}
	return fmt.Sprintf("tokenmetrics %s error (status %d): %s",
		e.Class(), e.StatusCode, e.Body)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Class categorizes the error for logging and metrics.
func (e *APIError) Class() ErrorClass {
	switch {
	case e.Err != nil:
		return ErrorClassNetwork
	case e.StatusCode >= 500:
		return ErrorClassServer
	default:
		return ErrorClassClient
	}
}
