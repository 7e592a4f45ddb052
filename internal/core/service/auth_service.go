package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
)

// AuthService implements signup and credential exchange.
type AuthService struct {
	repo     ports.UserRepository
	tokens   *TokenManager
	presence ports.PresenceStore
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenManager, presence ports.PresenceStore, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, presence: presence, logger: logger}
}

// SignUp creates an account. A request without a role gets the self-service
// default (supplier). A request naming a role is honored only for the staff
// subset; admin or unknown roles fail with domain.ErrRoleNotAllowed.
func (s *AuthService) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role := domain.RoleSupplier
	if input.Role != "" {
		parsed, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, domain.ErrRoleNotAllowed
		}
		if !parsed.IsStaff() {
			return nil, domain.ErrRoleNotAllowed
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Role:         role,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		DateOfBirth:  input.DateOfBirth,
		Nationality:  input.Nationality,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// SignIn exchanges credentials for a token. The same error is returned for
// an unknown account and a wrong password.
func (s *AuthService) SignIn(ctx context.Context, usernameOrEmail, password string) (string, *domain.User, error) {
	if usernameOrEmail == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	if err := s.presence.Touch(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record presence")
	}

	s.logger.Info().Str("username", user.Username).Msg("user signed in")
	return token, user, nil
}
