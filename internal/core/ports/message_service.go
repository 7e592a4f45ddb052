package ports

import (
	"context"

	"github.com/cedrulion/murika-farm/internal/core/domain"
)

// MessageService defines the messaging use cases. There is no push delivery;
// persistence is the only guarantee and clients poll for new messages.
type MessageService interface {
	Send(ctx context.Context, senderID, receiverID, content string) (*domain.Message, error)
	Conversation(ctx context.Context, userID, otherID string) ([]*domain.Message, error)
	Inbox(ctx context.Context, userID string) ([]InboxEntry, error)
	MarkRead(ctx context.Context, messageID string) error
}
