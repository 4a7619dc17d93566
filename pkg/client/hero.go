package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tunjipaul/folio/pkg/domain"
)

// ListHeroes returns all hero sections.
func (c *Client) ListHeroes(ctx context.Context) ([]domain.Hero, error) {
	var heroes []domain.Hero
	if err := c.get(ctx, "/api/hero", &heroes); err != nil {
		return nil, fmt.Errorf("client.ListHeroes: %w", err)
	}
	return heroes, nil
}

// GetHero fetches a single hero section by ID.
func (c *Client) GetHero(ctx context.Context, id int) (*domain.Hero, error) {
	var hero domain.Hero
	if err := c.get(ctx, "/api/hero/"+strconv.Itoa(id), &hero); err != nil {
		return nil, fmt.Errorf("client.GetHero: %w", err)
	}
	return &hero, nil
}

// CreateHero creates a hero section.
func (c *Client) CreateHero(ctx context.Context, in domain.HeroInput) (*domain.Hero, error) {
	if err := domain.Validate(in); err != nil {
		return nil, fmt.Errorf("client.CreateHero: %w", err)
	}
	var created domain.Hero
	if err := c.post(ctx, "/api/hero", in, &created); err != nil {
		return nil, fmt.Errorf("client.CreateHero: %w", err)
	}
	return &created, nil
}

// UpdateHero replaces the editable fields of a hero section.
func (c *Client) UpdateHero(ctx context.Context, id int, in domain.HeroInput) (*domain.Hero, error) {
	if err := domain.Validate(in); err != nil {
		return nil, fmt.Errorf("client.UpdateHero: %w", err)
	}
	var updated domain.Hero
	if err := c.put(ctx, "/api/hero/"+strconv.Itoa(id), in, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateHero: %w", err)
	}
	return &updated, nil
}

// DeleteHero deletes a hero section.
func (c *Client) DeleteHero(ctx context.Context, id int) error {
	if err := c.delete(ctx, "/api/hero/"+strconv.Itoa(id)); err != nil {
		return fmt.Errorf("client.DeleteHero: %w", err)
	}
	return nil
}
