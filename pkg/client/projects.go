package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tunjipaul/folio/pkg/domain"
)

// ListProjects returns the projects shown on the public site.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.get(ctx, "/api/projects", &projects); err != nil {
		return nil, fmt.Errorf("client.ListProjects: %w", err)
	}
	return projects, nil
}

// ManageProjects returns every project for the admin editor.
func (c *Client) ManageProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.get(ctx, "/api/projects/manage", &projects); err != nil {
		return nil, fmt.Errorf("client.ManageProjects: %w", err)
	}
	return projects, nil
}

// GetProject fetches a single project by ID.
func (c *Client) GetProject(ctx context.Context, id int) (*domain.Project, error) {
	var project domain.Project
	if err := c.get(ctx, "/api/projects/"+strconv.Itoa(id), &project); err != nil {
		return nil, fmt.Errorf("client.GetProject: %w", err)
	}
	return &project, nil
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, in domain.ProjectInput) (*domain.Project, error) {
	if err := domain.Validate(in); err != nil {
		return nil, fmt.Errorf("client.CreateProject: %w", err)
	}
	var created domain.Project
	if err := c.post(ctx, "/api/projects", in, &created); err != nil {
		return nil, fmt.Errorf("client.CreateProject: %w", err)
	}
	return &created, nil
}

// UpdateProject replaces the editable fields of a project.
func (c *Client) UpdateProject(ctx context.Context, id int, in domain.ProjectInput) (*domain.Project, error) {
	if err := domain.Validate(in); err != nil {
		return nil, fmt.Errorf("client.UpdateProject: %w", err)
	}
	var updated domain.Project
	if err := c.put(ctx, "/api/projects/"+strconv.Itoa(id), in, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateProject: %w", err)
	}
	return &updated, nil
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, id int) error {
	if err := c.delete(ctx, "/api/projects/"+strconv.Itoa(id)); err != nil {
		return fmt.Errorf("client.DeleteProject: %w", err)
	}
	return nil
}
