package domain

import "time"

// Message is an inbound contact-form submission.
type Message struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Reply is an email reply to a contact message, sent by the backend.
type Reply struct {
	MessageID      int    `json:"message_id" validate:"required,gt=0"`
	RecipientEmail string `json:"recipient_email" validate:"required,email"`
	ReplyText      string `json:"reply_text" validate:"required,max=10000"`
}

// ReplyResult is the backend's acknowledgement of a sent reply.
type ReplyResult struct {
	Message string `json:"message"`
	EmailID string `json:"email_id"`
}

// UnreadCount returns the number of messages not yet marked read.
func UnreadCount(msgs []Message) int {
	n := 0
	for _, m := range msgs {
		if !m.IsRead {
			n++
		}
	}
	return n
}
