package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Version is reported in the User-Agent header of every request.
const Version = "0.4.1"

// Client talks to the Taskmesh API. It holds no per-call mutable state:
// each request gets its own timeout, retry counter, and request ID, so a
// single Client is safe for concurrent use.
type Client struct {
	creds   CredentialSource
	options *Options
	rc      *resty.Client
}

// New builds a Client that reads credentials from creds on every request.
// It returns an error if creds is nil or the applied options fail
// [Options.Validate].
func New(creds CredentialSource, opts ...Option) (*Client, error) {
	if creds == nil {
		return nil, errors.New("credential source must not be nil")
	}

	options := newClientOptions()
	for _, opt := range opts {
		opt(options)
	}

	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	rc := resty.New()
	rc.SetRetryCount(options.attempts - 1)
	rc.SetRetryWaitTime(options.retryWaitTime)
	rc.SetRetryMaxWaitTime(options.retryMaxWaitTime)
	rc.AddRetryCondition(resty.RetryConditionFunc(options.retryPolicy))
	rc.SetRetryAfter(retryAfterHeader)
	rc.AddRetryHook(func(r *resty.Response, err error) {
		if err != nil {
			options.requestLogger.Warnf("retrying after transport error: %v", err)
			return
		}
		options.requestLogger.Warnf("retrying after HTTP %d from %s", r.StatusCode(), r.Request.URL)
	})

	return &Client{creds: creds, options: options, rc: rc}, nil
}

// retryAfterHeader computes the wait before the next attempt. For
// rate-limited responses it honours the Retry-After header (seconds);
// returning zero falls back to resty's exponential backoff between the
// configured wait bounds.
func retryAfterHeader(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
	if resp == nil || resp.StatusCode() != http.StatusTooManyRequests {
		return 0, nil
	}

	if secs, err := strconv.Atoi(resp.Header().Get("Retry-After")); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second, nil
	}
	return 0, nil
}

// Get issues a GET request. Params may be nil; filtered-out parameters
// (nil values, empty strings) never reach the wire.
func (c *Client) Get(ctx context.Context, endpoint string, params Params) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, endpoint+params.encode(), nil)
}

// Post issues a POST request with a JSON-serialized body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, endpoint, body)
}

// Patch issues a PATCH request with a JSON-serialized body.
func (c *Client) Patch(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, endpoint, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil)
}

// do executes one logical call: credential precondition, URL composition,
// timeout, retry loop, and classification of the outcome. Every failure
// path returns a *APIError; no other error shape leaves this method.
func (c *Client) do(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	cfg := c.creds.APIConfig()
	if cfg.APIKey == "" {
		return nil, &APIError{
			StatusCode: http.StatusUnauthorized,
			Message:    "not authenticated - run 'taskmesh auth login' first",
		}
	}

	baseURL := cfg.APIURL
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	fullURL := strings.TrimRight(baseURL, "/") + endpoint

	// The default timeout applies only when the caller did not bring a
	// deadline of its own.
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.options.requestTimeout)
		defer cancel()
	}

	req := c.rc.R().
		SetContext(ctx).
		SetHeaders(c.options.requestHeaders).
		SetHeader("User-Agent", c.options.userAgent).
		SetHeader("X-Api-Key", cfg.APIKey).
		SetHeader("X-Request-Id", uuid.NewString())
	if body != nil {
		req.SetBody(body)
	}

	c.options.requestLogger.Debugf("%s %s", method, fullURL)

	resp, err := req.Execute(method, fullURL)
	if err != nil {
		return nil, c.classifyTransportError(method, fullURL, err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		wait := 60
		if secs, convErr := strconv.Atoi(resp.Header().Get("Retry-After")); convErr == nil && secs > 0 {
			wait = secs
		}
		apiErr := &APIError{
			StatusCode: http.StatusTooManyRequests,
			Message:    fmt.Sprintf("Rate limited. Try again in %d seconds.", wait),
		}
		c.options.requestLogger.Errorf("%s %s: %v", method, fullURL, apiErr)
		return nil, apiErr
	}

	if !resp.IsSuccess() {
		apiErr := errorFromResponse(resp.StatusCode(), resp.Header().Get("Content-Type"), resp.Body())
		c.options.requestLogger.Errorf("%s %s: %v", method, fullURL, apiErr)
		return nil, apiErr
	}

	return unwrapEnvelope(resp.Body()), nil
}

// classifyTransportError maps a failure that produced no HTTP response onto
// the synthetic region of the taxonomy: 408 for timeouts and cancellation,
// 500 for everything else once the retry budget is spent.
func (c *Client) classifyTransportError(method, url string, err error) *APIError {
	c.options.requestLogger.Errorf("%s %s: %v", method, url, err)

	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{StatusCode: http.StatusRequestTimeout, Message: "Request timed out"}
	}

	if errors.Is(err, context.Canceled) {
		return &APIError{StatusCode: http.StatusRequestTimeout, Message: "Request canceled"}
	}

	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    fmt.Sprintf("Request failed after retries: %v", err),
	}
}

// unwrapEnvelope strips the {"data": <payload>} wrapper from a successful
// response body. Bodies without a "data" key (or non-object bodies) pass
// through unchanged; an empty body becomes nil.
func unwrapEnvelope(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return trimmed
	}

	if data, ok := env["data"]; ok {
		return data
	}
	return trimmed
}

// decode runs a raw payload through json.Unmarshal into a typed value. It
// is written to wrap a (payload, error) pair directly, keeping facade
// methods to a single expression.
func decode[T any](raw json.RawMessage, err error) (T, error) {
	var out T
	if err != nil {
		return out, err
	}
	if len(raw) == 0 {
		return out, nil
	}
	if uerr := json.Unmarshal(raw, &out); uerr != nil {
		return out, &APIError{
			StatusCode: http.StatusInternalServerError,
			Message:    fmt.Sprintf("malformed response payload: %v", uerr),
		}
	}
	return out, nil
}
