package ports

import (
	"context"

	"github.com/cedrulion/murika-farm/internal/core/domain"
)

// SignUpInput carries all fields accepted at account creation. Role is the
// raw requested role string; empty means the self-service default.
type SignUpInput struct {
	Username    string
	Email       string
	Phone       string
	Password    string
	Role        string
	FirstName   string
	LastName    string
	DateOfBirth string
	Nationality string
}

// AuthService implements credential exchange and account creation.
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	// SignIn exchanges credentials for a signed bearer token and the
	// authenticated user.
	SignIn(ctx context.Context, usernameOrEmail, password string) (string, *domain.User, error)
}
