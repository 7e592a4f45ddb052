package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const presenceTTL = 15 * time.Minute

const presencePrefix = "online:"

// PresenceStore tracks online users as per-user keys with a TTL. Keeping the
// state in Redis rather than process memory lets multiple server instances
// share one view of who is online.
type PresenceStore struct {
	client *redis.Client
}

// NewPresenceStore creates a PresenceStore wrapping the given Redis client.
func NewPresenceStore(client *redis.Client) *PresenceStore {
	return &PresenceStore{client: client}
}

// Touch marks the user online and refreshes the key expiry.
func (p *PresenceStore) Touch(ctx context.Context, userID string) error {
	if err := p.client.Set(ctx, presencePrefix+userID, "1", presenceTTL).Err(); err != nil {
		return fmt.Errorf("presence touch: %w", err)
	}
	return nil
}

// Clear removes the user's presence key immediately.
func (p *PresenceStore) Clear(ctx context.Context, userID string) error {
	if err := p.client.Del(ctx, presencePrefix+userID).Err(); err != nil {
		return fmt.Errorf("presence clear: %w", err)
	}
	return nil
}

// Online scans for all presence keys and returns the user IDs.
func (p *PresenceStore) Online(ctx context.Context) ([]string, error) {
	var ids []string
	iter := p.client.Scan(ctx, 0, presencePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), presencePrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("presence scan: %w", err)
	}
	return ids, nil
}
