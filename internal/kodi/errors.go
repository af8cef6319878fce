package kodi

import (
	"errors"
	"fmt"
)

// ErrNoVideoFound matches any NoVideoError via errors.Is
var ErrNoVideoFound = errors.New("no youtube video found")

// TransportError reports that a call never produced an HTTP response
type TransportError struct {
	Method Method
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error calling %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports a non-success HTTP status or an unreadable response
type ProtocolError struct {
	Method     Method
	StatusCode int
	Body       string
	Err        error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol error calling %s (status %d): %v", e.Method, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("protocol error calling %s: status %d: %s", e.Method, e.StatusCode, e.Body)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// NoVideoError is returned when a URL carries no recognizable YouTube video id
type NoVideoError struct {
	URL string
}

func (e *NoVideoError) Error() string {
	return fmt.Sprintf("No youtube video found: %s", e.URL)
}

func (e *NoVideoError) Is(target error) bool {
	return target == ErrNoVideoFound
}

// UnknownCommandError is returned by Dispatch for a chat command name that
// is not registered
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown chat command: %s", e.Name)
}
