package client

import (
	"context"
	"net/url"
	"time"
)

// Member is a user's membership in a tenant.
type Member struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name,omitempty"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type InviteMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

func (c *Client) ListMembers(ctx context.Context) ([]Member, error) {
	path, err := c.tenantPath("/members")
	if err != nil {
		return nil, err
	}
	return decode[[]Member](c.Get(ctx, path, nil))
}

func (c *Client) GetMember(ctx context.Context, id string) (Member, error) {
	path, err := c.tenantPath("/members/" + url.PathEscape(id))
	if err != nil {
		return Member{}, err
	}
	return decode[Member](c.Get(ctx, path, nil))
}

// InviteMember invites an email address into the tenant. The server fills
// in the default role when none is given.
func (c *Client) InviteMember(ctx context.Context, req InviteMemberRequest) (Member, error) {
	path, err := c.tenantPath("/members")
	if err != nil {
		return Member{}, err
	}
	return decode[Member](c.Post(ctx, path, req))
}

func (c *Client) RemoveMember(ctx context.Context, id string) error {
	path, err := c.tenantPath("/members/" + url.PathEscape(id))
	if err != nil {
		return err
	}
	_, err = c.Delete(ctx, path)
	return err
}
