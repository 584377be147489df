package client

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Option func(*Options)

type Options struct {
	attempts         int
	retryWaitTime    time.Duration
	retryMaxWaitTime time.Duration
	requestTimeout   time.Duration
	requestLogger    RequestLogger
	retryPolicy      RetryPolicy
	requestHeaders   map[string]string
	userAgent        string
}

func newClientOptions() *Options {
	return &Options{
		attempts:         3,
		retryWaitTime:    500 * time.Millisecond,
		retryMaxWaitTime: 3 * time.Second,
		requestTimeout:   30 * time.Second,
		requestLogger:    &NoopLogger{},
		retryPolicy:      DefaultRetryPolicy,
		requestHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		userAgent: "taskmesh-cli/" + Version,
	}
}

// WithMaxAttempts sets the total attempt budget per call, including the
// first attempt. The budget is shared by every retryable failure class
// (429, 5xx, transient transport errors).
func WithMaxAttempts(attempts int) Option {
	return func(o *Options) {
		if attempts >= 1 {
			o.attempts = attempts
		}
	}
}

func WithRetryWaitTime(waitTime time.Duration) Option {
	return func(o *Options) {
		if waitTime >= 100*time.Millisecond {
			o.retryWaitTime = waitTime
		}
	}
}

func WithRetryMaxWaitTime(maxWaitTime time.Duration) Option {
	return func(o *Options) {
		if maxWaitTime >= 100*time.Millisecond {
			o.retryMaxWaitTime = maxWaitTime
		}
	}
}

// WithRequestTimeout sets the default per-call timeout, applied only when
// the caller's context carries no deadline of its own.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout >= 100*time.Millisecond {
			o.requestTimeout = timeout
		}
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

func WithRetryPolicy(policy RetryPolicy) Option {
	return func(o *Options) {
		if policy != nil {
			o.retryPolicy = policy
		}
	}
}

// WithRequestHeader adds a default header to every request. Content-Type
// and Accept are fixed to application/json and cannot be overridden.
func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" || strings.EqualFold(header, "Content-Type") || strings.EqualFold(header, "Accept") {
			return
		}

		o.requestHeaders[header] = value
	}
}

func WithUserAgent(userAgent string) Option {
	return func(o *Options) {
		if strings.TrimSpace(userAgent) != "" {
			o.userAgent = userAgent
		}
	}
}

// Validate checks option consistency. [New] calls this after applying all
// options and refuses to build a client from an invalid set.
func (o *Options) Validate() error {
	if o.attempts < 1 {
		return errors.New("attempts must be at least 1")
	}

	if o.attempts > 10 {
		return errors.New("attempts must not exceed 10")
	}

	if o.retryWaitTime < 100*time.Millisecond {
		return errors.New("retryWaitTime must be at least 100ms")
	}

	if o.retryWaitTime > time.Minute {
		return fmt.Errorf("retryWaitTime must not exceed %s", time.Minute)
	}

	if o.retryMaxWaitTime < 100*time.Millisecond {
		return errors.New("retryMaxWaitTime must be at least 100ms")
	}

	if o.retryMaxWaitTime > 5*time.Minute {
		return fmt.Errorf("retryMaxWaitTime must not exceed %s", 5*time.Minute)
	}

	if o.retryMaxWaitTime < o.retryWaitTime {
		return fmt.Errorf("retryMaxWaitTime (%s) must be greater than or equal to retryWaitTime (%s)",
			o.retryMaxWaitTime, o.retryWaitTime)
	}

	if o.requestTimeout < 100*time.Millisecond {
		return errors.New("requestTimeout must be at least 100ms")
	}

	if o.requestTimeout > 10*time.Minute {
		return fmt.Errorf("requestTimeout must not exceed %s", 10*time.Minute)
	}

	if o.requestLogger == nil {
		return errors.New("requestLogger must not be nil")
	}

	if o.retryPolicy == nil {
		return errors.New("retryPolicy must not be nil")
	}

	if strings.TrimSpace(o.userAgent) == "" {
		return errors.New("userAgent must not be empty")
	}

	return nil
}
