package client

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// RetryPolicy decides whether a failed attempt should be retried. It is
// consulted after every attempt with the response (nil on transport failure)
// and the transport error (nil when a response was received).
type RetryPolicy func(*resty.Response, error) bool

// DefaultRetryPolicy is the retry condition used by [Client] unless
// overridden via [WithRetryPolicy]. It retries on HTTP 429 (rate limit) and
// 5xx server errors, and on transient connection errors. Other 4xx statuses
// are never retried: they reflect a client-side or request-content problem a
// retry cannot fix. Context cancellation, deadline exceeded, and DNS
// resolution failures are never retried either.
func DefaultRetryPolicy(r *resty.Response, err error) bool {
	if err != nil {
		// Timeouts and cancellation fail the call immediately.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}

		// A name that does not resolve will not resolve on the next attempt.
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			return false
		}

		// Other connection errors are assumed transient.
		return true
	}

	return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
}
