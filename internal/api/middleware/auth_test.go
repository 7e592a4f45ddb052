package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/service"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByUsernameOrEmail(_ context.Context, v string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == v || u.Email == v {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type fakePresence struct {
	touched map[string]bool
}

func (p *fakePresence) Touch(_ context.Context, userID string) error {
	p.touched[userID] = true
	return nil
}

func (p *fakePresence) Clear(_ context.Context, userID string) error {
	delete(p.touched, userID)
	return nil
}

func (p *fakePresence) Online(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(p.touched))
	for id := range p.touched {
		out = append(out, id)
	}
	return out, nil
}

func authTestFixture() (*service.TokenManager, *fakeUserRepo, *fakePresence, *domain.User) {
	tokens := service.NewTokenManager("test-secret", time.Hour)
	user := &domain.User{ID: "u1", Username: "alice", Email: "a@x.com", Role: domain.RoleSupplier}
	repo := &fakeUserRepo{users: map[string]*domain.User{user.ID: user}}
	return tokens, repo, &fakePresence{touched: make(map[string]bool)}, user
}

func invokeAuth(t *testing.T, mw echo.MiddlewareFunc, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return c, handler(c)
}

func TestAuth_ValidToken(t *testing.T) {
	tokens, repo, presence, user := authTestFixture()
	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, err := invokeAuth(t, Auth(tokens, repo, presence), "Bearer "+token)
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}
	if got, _ := c.Get(CtxUserID).(string); got != user.ID {
		t.Fatalf("user id not set: %q", got)
	}
	if got, _ := c.Get(CtxUsername).(string); got != user.Username {
		t.Fatalf("username not set: %q", got)
	}
	if got, _ := c.Get(CtxRole).(string); got != string(user.Role) {
		t.Fatalf("role not set: %q", got)
	}
	if _, ok := c.Get(CtxUser).(*domain.User); !ok {
		t.Fatalf("current user not set")
	}
	if !presence.touched[user.ID] {
		t.Fatalf("presence not refreshed")
	}
}

func TestAuth_BareTokenCompat(t *testing.T) {
	tokens, repo, presence, user := authTestFixture()
	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := invokeAuth(t, Auth(tokens, repo, presence), token); err != nil {
		t.Fatalf("bare token should still pass, got %v", err)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	tokens, repo, presence, _ := authTestFixture()

	_, err := invokeAuth(t, Auth(tokens, repo, presence), "")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_WrongScheme(t *testing.T) {
	tokens, repo, presence, user := authTestFixture()
	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	_, err = invokeAuth(t, Auth(tokens, repo, presence), "Basic "+token)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_ExpiredToken(t *testing.T) {
	tokens, repo, presence, user := authTestFixture()

	// Mint a token that expired an hour ago, signed with the same secret.
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      time.Now().Add(-2 * time.Hour).Unix(),
		"exp":      time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, err = invokeAuth(t, Auth(tokens, repo, presence), "Bearer "+expired)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_TamperedToken(t *testing.T) {
	tokens, repo, presence, user := authTestFixture()
	other := service.NewTokenManager("other-secret", time.Hour)
	token, err := other.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	_, err = invokeAuth(t, Auth(tokens, repo, presence), "Bearer "+token)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_DeletedUser(t *testing.T) {
	tokens, repo, presence, user := authTestFixture()
	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if err := repo.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	_, err = invokeAuth(t, Auth(tokens, repo, presence), "Bearer "+token)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		token  string
		ok     bool
	}{
		{"canonical", "Bearer abc", "abc", true},
		{"lowercase scheme", "bearer abc", "abc", true},
		{"bare token", "abc", "abc", true},
		{"wrong scheme", "Basic abc", "", false},
		{"scheme without token", "Bearer ", "", false},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, ok := ExtractBearerToken(tc.header)
			if ok != tc.ok || token != tc.token {
				t.Fatalf("got (%q, %v), want (%q, %v)", token, ok, tc.token, tc.ok)
			}
		})
	}
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != want {
		t.Fatalf("expected status %d, got %d", want, he.Code)
	}
}
