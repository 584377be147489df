package client

import (
	"context"
	"time"
)

// User is the authenticated account, as reported by the global /me path.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (User, error) {
	return decode[User](c.Get(ctx, "/me", nil))
}

// Ping verifies connectivity and credentials with a single /me round trip.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Me(ctx)
	return err
}
