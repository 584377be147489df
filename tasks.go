package client

import (
	"context"
	"net/url"
	"time"
)

// Task is a unit of work inside a project.
type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Assignee    string     `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskFilter narrows ListTasks results. Zero-value fields are omitted from
// the query string.
type TaskFilter struct {
	Status    string
	Assignee  string
	ProjectID string
	Limit     int
}

func (f TaskFilter) params() Params {
	p := Params{
		"status":     f.Status,
		"assignee":   f.Assignee,
		"project_id": f.ProjectID,
	}
	if f.Limit > 0 {
		p["limit"] = f.Limit
	}
	return p
}

type CreateTaskRequest struct {
	ProjectID   string     `json:"project_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest carries a partial update; empty fields are left
// untouched by the server.
type UpdateTaskRequest struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// ListTasks returns the tenant's tasks matching filter.
func (c *Client) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	path, err := c.tenantPath("/tasks")
	if err != nil {
		return nil, err
	}
	return decode[[]Task](c.Get(ctx, path, filter.params()))
}

func (c *Client) GetTask(ctx context.Context, id string) (Task, error) {
	path, err := c.tenantPath("/tasks/" + url.PathEscape(id))
	if err != nil {
		return Task{}, err
	}
	return decode[Task](c.Get(ctx, path, nil))
}

func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (Task, error) {
	path, err := c.tenantPath("/tasks")
	if err != nil {
		return Task{}, err
	}
	return decode[Task](c.Post(ctx, path, req))
}

func (c *Client) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (Task, error) {
	path, err := c.tenantPath("/tasks/" + url.PathEscape(id))
	if err != nil {
		return Task{}, err
	}
	return decode[Task](c.Patch(ctx, path, req))
}

// CompleteTask marks a task done.
func (c *Client) CompleteTask(ctx context.Context, id string) (Task, error) {
	return c.UpdateTask(ctx, id, UpdateTaskRequest{Status: "done"})
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	path, err := c.tenantPath("/tasks/" + url.PathEscape(id))
	if err != nil {
		return err
	}
	_, err = c.Delete(ctx, path)
	return err
}
