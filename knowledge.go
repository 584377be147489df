package client

import (
	"context"
	"net/url"
	"time"
)

// Doc is a knowledge-base document scoped to a tenant.
type Doc struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocFilter narrows ListDocs results. Zero-value fields are omitted from
// the query string.
type DocFilter struct {
	Tag   string
	Query string
	Limit int
}

func (f DocFilter) params() Params {
	p := Params{
		"tag": f.Tag,
		"q":   f.Query,
	}
	if f.Limit > 0 {
		p["limit"] = f.Limit
	}
	return p
}

type CreateDocRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

type UpdateDocRequest struct {
	Title   string   `json:"title,omitempty"`
	Content string   `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// ListDocs returns the tenant's knowledge documents matching filter. The
// listing omits document content; fetch a single document for the full
// text.
func (c *Client) ListDocs(ctx context.Context, filter DocFilter) ([]Doc, error) {
	path, err := c.tenantPath("/knowledge")
	if err != nil {
		return nil, err
	}
	return decode[[]Doc](c.Get(ctx, path, filter.params()))
}

func (c *Client) GetDoc(ctx context.Context, id string) (Doc, error) {
	path, err := c.tenantPath("/knowledge/" + url.PathEscape(id))
	if err != nil {
		return Doc{}, err
	}
	return decode[Doc](c.Get(ctx, path, nil))
}

func (c *Client) CreateDoc(ctx context.Context, req CreateDocRequest) (Doc, error) {
	path, err := c.tenantPath("/knowledge")
	if err != nil {
		return Doc{}, err
	}
	return decode[Doc](c.Post(ctx, path, req))
}

func (c *Client) UpdateDoc(ctx context.Context, id string, req UpdateDocRequest) (Doc, error) {
	path, err := c.tenantPath("/knowledge/" + url.PathEscape(id))
	if err != nil {
		return Doc{}, err
	}
	return decode[Doc](c.Patch(ctx, path, req))
}

func (c *Client) DeleteDoc(ctx context.Context, id string) error {
	path, err := c.tenantPath("/knowledge/" + url.PathEscape(id))
	if err != nil {
		return err
	}
	_, err = c.Delete(ctx, path)
	return err
}
