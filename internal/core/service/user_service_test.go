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

func seedUser(t *testing.T, repo *stubUserRepo, username, email string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func newUserService(repo *stubUserRepo, presence *stubPresence) *UserService {
	logger.Reset()
	log := logger.Init(logger.Options{Level: "error"})
	return NewUserService(repo, presence, log)
}

func TestUserService_UpdateProfile_OnlyOwnRecord(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubPresence())

	alice := seedUser(t, repo, "alice", "a@x.com", domain.RoleSupplier)
	bob := seedUser(t, repo, "bob", "b@x.com", domain.RoleSupplier)

	// The update target is alice regardless of what any body id might say;
	// the service only ever receives the authenticated id.
	updated, err := svc.UpdateProfile(context.Background(), alice.ID, ports.UpdateProfileInput{
		FirstName: "Alice",
		Phone:     "0788000000",
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.ID != alice.ID || updated.FirstName != "Alice" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	unchanged, err := repo.FindByID(context.Background(), bob.ID)
	if err != nil {
		t.Fatalf("find bob: %v", err)
	}
	if unchanged.FirstName != "" || unchanged.Phone != "" {
		t.Fatalf("bob's record was mutated: %+v", unchanged)
	}
}

func TestUserService_UpdateProfile_RoleImmutable(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubPresence())

	alice := seedUser(t, repo, "alice", "a@x.com", domain.RoleSupplier)

	updated, err := svc.UpdateProfile(context.Background(), alice.ID, ports.UpdateProfileInput{Username: "alice2"})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Role != domain.RoleSupplier {
		t.Fatalf("role changed through profile update: %s", updated.Role)
	}
}

func TestUserService_UpdateProfile_RehashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubPresence())

	alice := seedUser(t, repo, "alice", "a@x.com", domain.RoleSupplier)
	oldHash := alice.PasswordHash

	updated, err := svc.UpdateProfile(context.Background(), alice.ID, ports.UpdateProfileInput{Password: "newpassword"})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.PasswordHash == oldHash || updated.PasswordHash == "newpassword" {
		t.Fatalf("password was not re-hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpassword")); err != nil {
		t.Fatalf("new hash does not match new password: %v", err)
	}
}

func TestUserService_UpdateProfile_EmptyFieldsUnchanged(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubPresence())

	alice := seedUser(t, repo, "alice", "a@x.com", domain.RoleSupplier)

	updated, err := svc.UpdateProfile(context.Background(), alice.ID, ports.UpdateProfileInput{})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Username != "alice" || updated.Email != "a@x.com" {
		t.Fatalf("empty input mutated fields: %+v", updated)
	}
}

func TestUserService_Delete_ClearsPresence(t *testing.T) {
	repo := newStubUserRepo()
	presence := newStubPresence()
	svc := newUserService(repo, presence)

	alice := seedUser(t, repo, "alice", "a@x.com", domain.RoleSupplier)
	_ = presence.Touch(context.Background(), alice.ID)

	if err := svc.Delete(context.Background(), alice.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), alice.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
	if presence.online[alice.ID] {
		t.Fatalf("presence not cleared on delete")
	}
}

func TestUserService_Delete_Unknown(t *testing.T) {
	svc := newUserService(newStubUserRepo(), newStubPresence())

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
