package adk

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of an error response is retained.
const maxErrorBody = 4 << 10

// Error is a non-2xx response from the pipeline API.
type Error struct {
	// HTTPStatus is the HTTP status code.
	HTTPStatus int

	// Body is the response body, truncated.
	Body string
}

func newError(resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &Error{
		HTTPStatus: resp.StatusCode,
		Body:       string(body),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("adk: server returned %d", e.HTTPStatus)
	}
	return fmt.Sprintf("adk: server returned %d: %s", e.HTTPStatus, e.Body)
}

// IsNotFound returns true when the app, user or session does not exist.
func (e *Error) IsNotFound() bool {
	return e.HTTPStatus == http.StatusNotFound
}

// IsServerError returns true for server-side failures.
func (e *Error) IsServerError() bool {
	return e.HTTPStatus >= 500
}

// AsError extracts *Error from an error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
