// Package scrape fetches competitor pages over HTTP.
package scrape

import (
	"context"
	"errors"
	"net"

	"github.com/rotisserie/eris"
)

// Fetcher retrieves the raw HTML of a single URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Reason tags why a fetch failed.
type Reason string

const (
	ReasonInvalidURL  Reason = "invalid_url"
	ReasonTimeout     Reason = "timeout"
	ReasonNetwork     Reason = "network_error"
	ReasonStatus      Reason = "http_status"
	ReasonContentType Reason = "content_type"
	ReasonRead        Reason = "read_error"
	ReasonBlocked     Reason = "blocked"
	ReasonUnknown     Reason = "unknown"
)

// Error is a fetch failure carrying its reason tag.
type Error struct {
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return string(e.Reason) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func fail(reason Reason, err error) *Error {
	return &Error{Reason: reason, Err: err}
}

// ReasonOf maps any fetch error to a reason tag.
func ReasonOf(err error) Reason {
	if err == nil {
		return ""
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Reason
	}
	if isTimeout(err) {
		return ReasonTimeout
	}
	return ReasonUnknown
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// classifyTransportError tags an error returned by http.Client.Do.
func classifyTransportError(err error) *Error {
	if isTimeout(err) {
		return fail(ReasonTimeout, eris.Wrap(err, "scrape: fetch"))
	}
	return fail(ReasonNetwork, eris.Wrap(err, "scrape: fetch"))
}
