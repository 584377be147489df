// Package client provides an HTTP client for the Taskmesh API.
//
// The client wraps [github.com/go-resty/resty/v2] with automatic retries,
// tenant-scoped path construction, response envelope unwrapping, and a
// single structured error type ([APIError]) for every failure.
//
// # Basic Usage
//
//	c, err := client.New(client.StaticCredentials{
//	    APIKey: "tm_live_...",
//	    Tenant: "acme",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tasks, err := c.ListTasks(ctx, client.TaskFilter{Status: "active"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Credentials
//
// Credentials are read from the supplied [CredentialSource] on every request,
// never cached by the client. Changing the stored API key or tenant takes
// effect on the next call without rebuilding the client. A missing API key
// fails the call with APIError 401 before any network traffic; a missing
// tenant fails tenant-scoped calls with APIError 400 the same way.
//
// # Configuration
//
// All configuration is supplied as [Option] functions passed to [New].
// Invalid values are silently ignored and the default is retained; the full
// option set is validated once inside [New].
//
// # Retry Behaviour
//
// Every call has a shared attempt budget (three attempts by default).
// [DefaultRetryPolicy] retries on HTTP 429 (rate limit) and 5xx server
// errors, and on transient connection errors. Other 4xx responses are never
// retried: they reflect a request-content problem a retry cannot fix. The
// Retry-After response header is honoured for rate-limit backoff. Context
// cancellation, deadline exceeded, and DNS resolution errors are never
// retried. Supply a custom function via [WithRetryPolicy] to override this
// behaviour.
//
// # Errors
//
// Every failure surfaces as exactly one [*APIError]; callers never see raw
// transport errors. Branch on APIError.StatusCode (or the [IsNotFound],
// [IsUnauthorized], [IsRateLimited] helpers) for programmatic decisions; the
// message text is for display only.
//
// # Response Envelope
//
// Successful responses arrive wrapped as {"data": <payload>}; the client
// unwraps the envelope automatically and returns the payload alone. Bodies
// without a "data" key are returned unchanged.
//
// # Logging
//
// Implement [RequestLogger] and supply it via [WithRequestLogger] to
// integrate with your logging library. The default [NoopLogger] discards
// all log output. Ensure your implementation redacts API keys from request
// and response data before persisting logs.
package client
