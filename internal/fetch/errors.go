package fetch

import (
	"errors"
	"fmt"
)

// Common fetch errors.
var (
	// ErrNotFound is returned when the remote resource does not exist (HTTP 404).
	ErrNotFound = errors.New("resource not found on the server")
	// ErrUnreachable is returned for DNS failures, refused connections, and
	// transfer timeouts.
	ErrUnreachable = errors.New("the network is unreachable")
)

// WriteError reports a failure to write the fetched body to disk.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// StatusError is the catch-all for non-2xx responses that are not a 404.
// It carries the transport's status so callers can surface it verbatim.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("download failed: %s", e.Status)
}
