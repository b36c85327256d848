package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned after a 401 response. The adapter has
// already fired the auth-failure callback by then, so callers only use it to
// stop processing; it is never shown to the user.
var ErrSessionExpired = errors.New("session expired")

// RequestError is any non-2xx answer other than 401, carrying the
// server-provided message.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// NetworkError means no usable response was received at all.
type NetworkError struct {
	URL     string
	Err     error
	Timeout bool
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("timeout for %s", e.URL)
	}
	return fmt.Sprintf("request to %s failed: %s", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
