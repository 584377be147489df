package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is the single error type surfaced by this package. Every failure,
// whatever its origin (HTTP status, transport error, timeout, malformed
// response), is translated into an APIError before it leaves the client.
//
// StatusCode carries the HTTP status, or a synthetic code for failures that
// never reached the server:
//
//	400  tenant-scoped call without a configured tenant
//	401  no API key configured (no network call is made)
//	408  client-side timeout or cancellation
//	500  transport failure after exhausting the retry budget
//
// Callers branch on StatusCode for programmatic decisions; Message is for
// display only.
type APIError struct {
	StatusCode int
	Message    string

	// Details holds the structured "details" object from the server's error
	// envelope, when present. Nil otherwise.
	Details json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// AsAPIError unwraps err into an *APIError if there is one in its chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

// IsRateLimited reports whether err is an APIError with status 429.
func IsRateLimited(err error) bool { return hasStatus(err, http.StatusTooManyRequests) }

// IsTimeout reports whether err is an APIError with status 408.
func IsTimeout(err error) bool { return hasStatus(err, http.StatusRequestTimeout) }

func hasStatus(err error, code int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == code
}

// errorEnvelope matches the two error body shapes the API produces:
// {"error": {"message": ..., "details": ...}} and {"message": ...}. The
// "error" field may also be a bare string.
type errorEnvelope struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

type errorObject struct {
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

// errorFromResponse classifies a non-2xx response into an *APIError,
// extracting the server's message and details when the body allows it and
// falling back to the raw body text otherwise.
func errorFromResponse(status int, contentType string, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		apiErr.Message = fmt.Sprintf("%s (empty error body)", http.StatusText(status))
		return apiErr
	}

	if strings.Contains(contentType, "application/json") {
		var env errorEnvelope
		if err := json.Unmarshal(trimmed, &env); err == nil {
			if len(env.Error) > 0 {
				var obj errorObject
				if err := json.Unmarshal(env.Error, &obj); err == nil && obj.Message != "" {
					apiErr.Message = obj.Message
					apiErr.Details = obj.Details
					return apiErr
				}

				var msg string
				if err := json.Unmarshal(env.Error, &msg); err == nil && msg != "" {
					apiErr.Message = msg
					return apiErr
				}
			}

			if env.Message != "" {
				apiErr.Message = env.Message
				return apiErr
			}
		}
	}

	apiErr.Message = string(trimmed)
	return apiErr
}
