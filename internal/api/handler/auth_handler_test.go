package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/cedrulion/murika-farm/internal/core/domain"
)

func TestAuthHandler_SignUp_Created(t *testing.T) {
	svc := &stubAuthService{signUpUser: &domain.User{ID: "u1", Username: "alice", Role: domain.RoleSupplier}}
	h := NewAuthHandler(svc, newStubPresenceStore())

	body := `{"username":"alice","email":"a@x.com","password":"secret123","role":"supplier"}`
	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/signup", body)

	if err := h.SignUp(c); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.signUpInput.Username != "alice" || svc.signUpInput.Role != "supplier" {
		t.Fatalf("input not forwarded: %+v", svc.signUpInput)
	}
}

func TestAuthHandler_SignUp_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"username":"alice","password":"secret123"}`},
		{"bad email", `{"username":"alice","email":"nope","password":"secret123"}`},
		{"short password", `{"username":"alice","email":"a@x.com","password":"abc"}`},
		{"short username", `{"username":"al","email":"a@x.com","password":"secret123"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAuthHandler(&stubAuthService{}, newStubPresenceStore())
			c, _ := newJSONContext(t, http.MethodPost, "/api/auth/signup", tc.body)
			requireHTTPStatus(t, h.SignUp(c), http.StatusBadRequest)
		})
	}
}

func TestAuthHandler_SignUp_ServiceErrorPassedThrough(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{signUpErr: domain.ErrRoleNotAllowed}, newStubPresenceStore())

	body := `{"username":"eve","email":"e@x.com","password":"secret123","role":"admin"}`
	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/signup", body)

	if err := h.SignUp(c); !errors.Is(err, domain.ErrRoleNotAllowed) {
		t.Fatalf("expected ErrRoleNotAllowed, got %v", err)
	}
}

func TestAuthHandler_SignIn_ReturnsTokenAndUser(t *testing.T) {
	user := &domain.User{ID: "u1", Username: "alice", Role: domain.RoleSupplier}
	h := NewAuthHandler(&stubAuthService{signInUser: user, signInToken: "tok-123"}, newStubPresenceStore())

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/signin", `{"usernameOrEmail":"alice","password":"secret123"}`)
	if err := h.SignIn(c); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Token       string       `json:"token"`
		CurrentUser *domain.User `json:"currentUser"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "tok-123" {
		t.Fatalf("unexpected token %q", resp.Token)
	}
	if resp.CurrentUser == nil || resp.CurrentUser.ID != user.ID {
		t.Fatalf("unexpected user: %+v", resp.CurrentUser)
	}
}

func TestAuthHandler_SignIn_UnknownUserReadsLikeBadPassword(t *testing.T) {
	for _, svcErr := range []error{domain.ErrUserNotFound, domain.ErrInvalidCredentials} {
		h := NewAuthHandler(&stubAuthService{signInErr: svcErr}, newStubPresenceStore())
		c, _ := newJSONContext(t, http.MethodPost, "/api/auth/signin", `{"usernameOrEmail":"ghost","password":"whatever"}`)
		requireHTTPStatus(t, h.SignIn(c), http.StatusUnauthorized)
	}
}

func TestAuthHandler_SignIn_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, newStubPresenceStore())
	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/signin", `{"usernameOrEmail":"alice"}`)
	requireHTTPStatus(t, h.SignIn(c), http.StatusBadRequest)
}

func TestAuthHandler_Logout_ClearsPresence(t *testing.T) {
	presence := newStubPresenceStore()
	user := &domain.User{ID: "u1", Username: "alice", Role: domain.RoleSupplier}
	if err := presence.Touch(context.Background(), user.ID); err != nil {
		t.Fatalf("touch: %v", err)
	}
	h := NewAuthHandler(&stubAuthService{}, presence)

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/logout", "")
	asAuthenticated(c, user)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if presence.online[user.ID] {
		t.Fatalf("presence not cleared")
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, newStubPresenceStore())
	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/logout", "")
	requireHTTPStatus(t, h.Logout(c), http.StatusUnauthorized)
}
