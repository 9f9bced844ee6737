package calendar

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// RequestError wraps any non-success Calendar API response. The error is
// propagated to the caller unchanged; no retry or translation happens here.
type RequestError struct {
	// Op is the API operation that failed (e.g. "events.insert").
	Op string

	// Err is the error returned by the API client.
	Err error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("calendar %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/errors.As.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code of the remote response, or 0 when
// the failure happened before a response was received.
func (e *RequestError) StatusCode() int {
	var apiErr *googleapi.Error
	if errors.As(e.Err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// IsNotFound reports whether err is a RequestError for a missing resource.
func IsNotFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode() == 404
}

// requestError wraps err as a *RequestError for the given operation.
func requestError(op string, err error) error {
	return &RequestError{Op: op, Err: err}
}

// ParseError indicates that an event payload could not be parsed.
type ParseError struct {
	// Reason describes what was wrong with the payload.
	Reason string

	// Err is the underlying decoding error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse event payload: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse event payload: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/errors.As.
func (e *ParseError) Unwrap() error {
	return e.Err
}
