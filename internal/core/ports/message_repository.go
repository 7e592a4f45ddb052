package ports

import (
	"context"
	"time"

	"github.com/cedrulion/murika-farm/internal/core/domain"
)

// InboxUser is the public slice of a counterparty's profile shown in the
// conversation overview.
type InboxUser struct {
	ID        string      `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      domain.Role `json:"role"`
}

// InboxEntry is one conversation in the overview: the counterparty plus the
// most recent message exchanged with them.
type InboxEntry struct {
	User                 InboxUser `json:"user"`
	LastMessage          string    `json:"last_message"`
	LastMessageTimestamp time.Time `json:"last_message_timestamp"`
}

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Insert(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	// Conversation returns every message where {sender,receiver} = {a,b},
	// ordered ascending by timestamp.
	Conversation(ctx context.Context, a, b string) ([]*domain.Message, error)
	// InboxOverview groups all messages touching userID by counterparty,
	// keeps the most recent message per group, joins the counterparty
	// profile, and orders groups by that timestamp descending.
	InboxOverview(ctx context.Context, userID string) ([]InboxEntry, error)
	// MarkRead sets the read flag. Idempotent; domain.ErrMessageNotFound
	// when no such message exists.
	MarkRead(ctx context.Context, id string) error
}
