package ports

import (
	"context"

	"github.com/cedrulion/murika-farm/internal/core/domain"
)

// UpdateProfileInput carries the optional profile fields. Empty strings are
// left unchanged; a non-empty Password is re-hashed before storage. Role is
// deliberately absent: profile updates can never change it.
type UpdateProfileInput struct {
	Username    string
	Email       string
	Phone       string
	Password    string
	FirstName   string
	LastName    string
	DateOfBirth string
	Nationality string
}

// UserService covers profile self-service and the admin user surface.
type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	// UpdateProfile mutates the record identified by userID, which callers
	// must take from the authenticated context, never from client input.
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Online(ctx context.Context) ([]string, error)
}
