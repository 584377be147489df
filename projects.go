package client

import (
	"context"
	"net/url"
	"time"
)

// Project groups tasks under a tenant.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListProjects returns the tenant's projects. Pass includeArchived to also
// list archived ones.
func (c *Client) ListProjects(ctx context.Context, includeArchived bool) ([]Project, error) {
	path, err := c.tenantPath("/projects")
	if err != nil {
		return nil, err
	}
	params := Params{}
	if includeArchived {
		params["include_archived"] = true
	}
	return decode[[]Project](c.Get(ctx, path, params))
}

func (c *Client) GetProject(ctx context.Context, id string) (Project, error) {
	path, err := c.tenantPath("/projects/" + url.PathEscape(id))
	if err != nil {
		return Project{}, err
	}
	return decode[Project](c.Get(ctx, path, nil))
}

func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (Project, error) {
	path, err := c.tenantPath("/projects")
	if err != nil {
		return Project{}, err
	}
	return decode[Project](c.Post(ctx, path, req))
}

func (c *Client) ArchiveProject(ctx context.Context, id string) (Project, error) {
	path, err := c.tenantPath("/projects/" + url.PathEscape(id))
	if err != nil {
		return Project{}, err
	}
	return decode[Project](c.Patch(ctx, path, map[string]any{"archived": true}))
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	path, err := c.tenantPath("/projects/" + url.PathEscape(id))
	if err != nil {
		return err
	}
	_, err = c.Delete(ctx, path)
	return err
}
