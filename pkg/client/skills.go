package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tunjipaul/folio/pkg/domain"
)

// ListSkills returns all skills.
func (c *Client) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	var skills []domain.Skill
	if err := c.get(ctx, "/api/skills", &skills); err != nil {
		return nil, fmt.Errorf("client.ListSkills: %w", err)
	}
	return skills, nil
}

// GetSkill fetches a single skill by ID.
func (c *Client) GetSkill(ctx context.Context, id int) (*domain.Skill, error) {
	var skill domain.Skill
	if err := c.get(ctx, "/api/skills/"+strconv.Itoa(id), &skill); err != nil {
		return nil, fmt.Errorf("client.GetSkill: %w", err)
	}
	return &skill, nil
}

// CreateSkill creates a skill.
func (c *Client) CreateSkill(ctx context.Context, in domain.SkillInput) (*domain.Skill, error) {
	if err := domain.Validate(in); err != nil {
		return nil, fmt.Errorf("client.CreateSkill: %w", err)
	}
	var created domain.Skill
	if err := c.post(ctx, "/api/skills", in, &created); err != nil {
		return nil, fmt.Errorf("client.CreateSkill: %w", err)
	}
	return &created, nil
}

// UpdateSkill replaces the editable fields of a skill.
func (c *Client) UpdateSkill(ctx context.Context, id int, in domain.SkillInput) (*domain.Skill, error) {
	if err := domain.Validate(in); err != nil {
		return nil, fmt.Errorf("client.UpdateSkill: %w", err)
	}
	var updated domain.Skill
	if err := c.put(ctx, "/api/skills/"+strconv.Itoa(id), in, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateSkill: %w", err)
	}
	return &updated, nil
}

// DeleteSkill deletes a skill.
func (c *Client) DeleteSkill(ctx context.Context, id int) error {
	if err := c.delete(ctx, "/api/skills/"+strconv.Itoa(id)); err != nil {
		return fmt.Errorf("client.DeleteSkill: %w", err)
	}
	return nil
}
