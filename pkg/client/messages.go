package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tunjipaul/folio/pkg/domain"
)

// ListMessages returns the contact inbox.
func (c *Client) ListMessages(ctx context.Context) ([]domain.Message, error) {
	var msgs []domain.Message
	if err := c.get(ctx, "/api/messages", &msgs); err != nil {
		return nil, fmt.Errorf("client.ListMessages: %w", err)
	}
	return msgs, nil
}

// GetMessage fetches a single message by ID.
func (c *Client) GetMessage(ctx context.Context, id int) (*domain.Message, error) {
	var msg domain.Message
	if err := c.get(ctx, "/api/messages/"+strconv.Itoa(id), &msg); err != nil {
		return nil, fmt.Errorf("client.GetMessage: %w", err)
	}
	return &msg, nil
}

// MarkMessageRead sets the read flag of a message.
func (c *Client) MarkMessageRead(ctx context.Context, id int, read bool) (*domain.Message, error) {
	var msg domain.Message
	if err := c.put(ctx, "/api/messages/"+strconv.Itoa(id), map[string]bool{"is_read": read}, &msg); err != nil {
		return nil, fmt.Errorf("client.MarkMessageRead: %w", err)
	}
	return &msg, nil
}

// DeleteMessage deletes a message.
func (c *Client) DeleteMessage(ctx context.Context, id int) error {
	if err := c.delete(ctx, "/api/messages/"+strconv.Itoa(id)); err != nil {
		return fmt.Errorf("client.DeleteMessage: %w", err)
	}
	return nil
}

// ReplyToMessage asks the backend to email a reply to the sender.
func (c *Client) ReplyToMessage(ctx context.Context, reply domain.Reply) (*domain.ReplyResult, error) {
	if err := domain.Validate(reply); err != nil {
		return nil, fmt.Errorf("client.ReplyToMessage: %w", err)
	}
	var res domain.ReplyResult
	if err := c.post(ctx, "/api/messages/reply", reply, &res); err != nil {
		return nil, fmt.Errorf("client.ReplyToMessage: %w", err)
	}
	return &res, nil
}
