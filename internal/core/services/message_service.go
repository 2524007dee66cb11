package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// MessageService delivers direct messages between operators and volunteers.
type MessageService struct {
	messageRepo ports.MessageRepository
	userRepo    ports.UserRepository
	broadcaster ports.Broadcaster
}

var _ ports.MessageService = (*MessageService)(nil)

// NewMessageService creates a new message service.
func NewMessageService(
	messageRepo ports.MessageRepository,
	userRepo ports.UserRepository,
	broadcaster ports.Broadcaster,
) ports.MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
	}
}

// Send validates the recipient, stores the message, and pushes it.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID uuid.UUID, body string) (*domain.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	message, err := domain.NewMessage(senderID, recipientID, body)
	if err != nil {
		return nil, err
	}

	message, err = s.messageRepo.Create(ctx, message)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(domain.EventNewMessage, message)

	return message, nil
}

// ListForUser returns the newest messages sent to or by the user.
func (s *MessageService) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.messageRepo.ListForUser(ctx, userID, limit, offset)
}
