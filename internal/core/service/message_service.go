package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
)

// MessageService implements messaging use cases. Delivery is persistence
// only; clients poll.
type MessageService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewMessageService(messages ports.MessageRepository, users ports.UserRepository, logger zerolog.Logger) *MessageService {
	return &MessageService{messages: messages, users: users, logger: logger}
}

// Send persists a message from sender to receiver with a server-assigned
// timestamp. The receiver must exist; the sender is trusted, it comes from
// the validated token.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" || receiverID == "" {
		return nil, domain.ErrValidation
	}

	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		Sender:    senderID,
		Receiver:  receiverID,
		Content:   content,
		Timestamp: time.Now().UTC(),
		Read:      false,
	}

	created, err := s.messages.Insert(ctx, msg)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("sender", senderID).Str("receiver", receiverID).Msg("message sent")
	return created, nil
}

// Conversation returns the full thread between the caller and otherID,
// oldest first, regardless of read status.
func (s *MessageService) Conversation(ctx context.Context, userID, otherID string) ([]*domain.Message, error) {
	return s.messages.Conversation(ctx, userID, otherID)
}

// Inbox returns one entry per counterparty, most recently active first.
func (s *MessageService) Inbox(ctx context.Context, userID string) ([]ports.InboxEntry, error) {
	return s.messages.InboxOverview(ctx, userID)
}

// MarkRead flips the read flag. Calling it on an already-read message is a
// no-op, not an error.
func (s *MessageService) MarkRead(ctx context.Context, messageID string) error {
	return s.messages.MarkRead(ctx, messageID)
}
