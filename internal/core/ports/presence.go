package ports

import "context"

// PresenceStore tracks which users are currently online. Backed by an
// external key-value store so the server stays horizontally scalable; a
// user counts as online while their key has not expired.
type PresenceStore interface {
	// Touch marks the user online and refreshes their expiry.
	Touch(ctx context.Context, userID string) error
	// Clear removes the user's presence immediately (logout).
	Clear(ctx context.Context, userID string) error
	// Online returns the IDs of all currently online users.
	Online(ctx context.Context) ([]string, error)
}
