package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrEndpointNotConfigured is returned when the URL of a remote function is empty
var ErrEndpointNotConfigured = errors.New("endpoint is not configured")

// RemoteError is a failure reported by a remote function, either through a
// non-2xx status or a success:false response.
type RemoteError struct {
	Function   string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request failed with status %d", e.Function, e.StatusCode)
	}
	return fmt.Sprintf("%s: request failed with status %d: %s", e.Function, e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from a remote function
func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}

// IsTimeout reports whether err was caused by a deadline, either the
// caller's or the client's per-request timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
