package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrMessageBodyRequired = errors.New("message body is required")

// Message is a direct message between two users (e.g. operator to
// volunteer).
type Message struct {
	ID          uuid.UUID  `json:"id"`
	SenderID    uuid.UUID  `json:"senderId"`
	RecipientID uuid.UUID  `json:"recipientId"`
	Body        string     `json:"body"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewMessage validates and builds a message.
func NewMessage(senderID, recipientID uuid.UUID, body string) (*Message, error) {
	if body == "" {
		return nil, ErrMessageBodyRequired
	}
	return &Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
