package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tunjipaul/folio/pkg/domain"
)

// ListAbout returns all about sections.
func (c *Client) ListAbout(ctx context.Context) ([]domain.About, error) {
	var sections []domain.About
	if err := c.get(ctx, "/api/about", &sections); err != nil {
		return nil, fmt.Errorf("client.ListAbout: %w", err)
	}
	return sections, nil
}

// GetAbout fetches a single about section by ID.
func (c *Client) GetAbout(ctx context.Context, id int) (*domain.About, error) {
	var about domain.About
	if err := c.get(ctx, "/api/about/"+strconv.Itoa(id), &about); err != nil {
		return nil, fmt.Errorf("client.GetAbout: %w", err)
	}
	return &about, nil
}

// CreateAbout creates an about section.
func (c *Client) CreateAbout(ctx context.Context, in domain.AboutInput) (*domain.About, error) {
	if err := domain.Validate(in); err != nil {
		return nil, fmt.Errorf("client.CreateAbout: %w", err)
	}
	var created domain.About
	if err := c.post(ctx, "/api/about", in, &created); err != nil {
		return nil, fmt.Errorf("client.CreateAbout: %w", err)
	}
	return &created, nil
}

// UpdateAbout replaces the editable fields of an about section.
func (c *Client) UpdateAbout(ctx context.Context, id int, in domain.AboutInput) (*domain.About, error) {
	if err := domain.Validate(in); err != nil {
		return nil, fmt.Errorf("client.UpdateAbout: %w", err)
	}
	var updated domain.About
	if err := c.put(ctx, "/api/about/"+strconv.Itoa(id), in, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateAbout: %w", err)
	}
	return &updated, nil
}

// DeleteAbout deletes an about section.
func (c *Client) DeleteAbout(ctx context.Context, id int) error {
	if err := c.delete(ctx, "/api/about/"+strconv.Itoa(id)); err != nil {
		return fmt.Errorf("client.DeleteAbout: %w", err)
	}
	return nil
}
