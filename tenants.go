package client

import (
	"context"
	"net/url"
	"time"
)

// Tenant is an organization scope. Tenant listing and creation are global
// operations: they are the only resource paths not prefixed by a tenant.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Plan      string    `json:"plan,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateTenantRequest struct {
	Name string `json:"name"`
}

// ListTenants returns every tenant the authenticated user belongs to.
func (c *Client) ListTenants(ctx context.Context) ([]Tenant, error) {
	return decode[[]Tenant](c.Get(ctx, "/tenants", nil))
}

func (c *Client) GetTenant(ctx context.Context, id string) (Tenant, error) {
	return decode[Tenant](c.Get(ctx, "/tenants/"+url.PathEscape(id), nil))
}

func (c *Client) CreateTenant(ctx context.Context, req CreateTenantRequest) (Tenant, error) {
	return decode[Tenant](c.Post(ctx, "/tenants", req))
}
