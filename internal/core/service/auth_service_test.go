package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
	"github.com/cedrulion/murika-farm/pkg/logger"
)

func newAuthService(repo ports.UserRepository, presence ports.PresenceStore) *AuthService {
	logger.Reset()
	log := logger.Init(logger.Options{Level: "error"})
	return NewAuthService(repo, NewTokenManager("secret", time.Hour), presence, log)
}

func signUpInput(username, email, role string) ports.SignUpInput {
	return ports.SignUpInput{
		Username: username,
		Email:    email,
		Password: "secret123",
		Role:     role,
	}
}

func TestAuthService_SignUp_DefaultRole(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubPresence())

	user, err := svc.SignUp(context.Background(), signUpInput("alice", "a@x.com", ""))
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if user.Role != domain.RoleSupplier {
		t.Fatalf("expected default supplier role, got %s", user.Role)
	}
	if user.PasswordHash == "secret123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_SignUp_StaffRole(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubPresence())

	user, err := svc.SignUp(context.Background(), signUpInput("frank", "f@x.com", "finance"))
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if user.Role != domain.RoleFinance {
		t.Fatalf("expected finance role, got %s", user.Role)
	}
}

func TestAuthService_SignUp_AdminRejected(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubPresence())

	if _, err := svc.SignUp(context.Background(), signUpInput("eve", "e@x.com", "admin")); !errors.Is(err, domain.ErrRoleNotAllowed) {
		t.Fatalf("expected ErrRoleNotAllowed, got %v", err)
	}
}

func TestAuthService_SignUp_UnknownRoleRejected(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubPresence())

	if _, err := svc.SignUp(context.Background(), signUpInput("eve", "e@x.com", "superuser")); !errors.Is(err, domain.ErrRoleNotAllowed) {
		t.Fatalf("expected ErrRoleNotAllowed, got %v", err)
	}
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubPresence())

	if _, err := svc.SignUp(context.Background(), signUpInput("bob", "b@x.com", "")); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.SignUp(context.Background(), signUpInput("bob2", "b@x.com", "")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_SignUp_MissingFields(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubPresence())

	if _, err := svc.SignUp(context.Background(), ports.SignUpInput{Username: "x"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SignIn_Success(t *testing.T) {
	repo := newStubUserRepo()
	presence := newStubPresence()
	svc := newAuthService(repo, presence)

	created, err := svc.SignUp(context.Background(), signUpInput("carol", "c@x.com", "marketing"))
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// Username and email both work as the login identifier.
	for _, id := range []string{"carol", "c@x.com"} {
		token, user, err := svc.SignIn(context.Background(), id, "secret123")
		if err != nil {
			t.Fatalf("signin with %q failed: %v", id, err)
		}
		if token == "" {
			t.Fatalf("expected token, got empty")
		}
		if user.ID != created.ID {
			t.Fatalf("unexpected user: %+v", user)
		}

		claims, err := NewTokenManager("secret", time.Hour).Validate(token)
		if err != nil {
			t.Fatalf("issued token invalid: %v", err)
		}
		if claims.UserID != created.ID || claims.Role != domain.RoleMarketing {
			t.Fatalf("unexpected claims: %+v", claims)
		}
	}

	if !presence.online[created.ID] {
		t.Fatalf("expected signin to record presence")
	}
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubPresence())

	if _, err := svc.SignUp(context.Background(), signUpInput("dave", "d@x.com", "")); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, _, err := svc.SignIn(context.Background(), "dave", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SignIn_UnknownUser(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubPresence())

	if _, _, err := svc.SignIn(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
