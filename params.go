package client

import (
	"fmt"
	"net/http"
	"net/url"
)

// Params holds query parameters for a request. Values may be strings,
// numbers, or booleans. Nil values and empty strings are dropped during
// encoding, so optional filters can be passed unconditionally.
type Params map[string]any

// encode renders the surviving parameters as a "?k=v&..." suffix, or ""
// when nothing survives filtering. Keys are emitted in url.Values order
// (sorted), which keeps encoded URLs deterministic.
func (p Params) encode() string {
	if len(p) == 0 {
		return ""
	}

	values := url.Values{}
	for key, value := range p {
		if value == nil {
			continue
		}
		s := fmt.Sprint(value)
		if s == "" {
			continue
		}
		values.Set(key, s)
	}

	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// tenantPath prefixes a logical resource path with the configured tenant
// scope, producing "/tenants/{tenant}{path}". A missing tenant is a
// configuration error, not a transient fault: the call fails with APIError
// 400 before any network traffic and is never retried.
func (c *Client) tenantPath(path string) (string, error) {
	tenant := c.creds.APIConfig().Tenant
	if tenant == "" {
		return "", &APIError{
			StatusCode: http.StatusBadRequest,
			Message:    "no tenant configured - run 'taskmesh tenant use <id>' first",
		}
	}
	return "/tenants/" + url.PathEscape(tenant) + path, nil
}
