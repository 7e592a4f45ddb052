package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cedrulion/murika-farm/internal/api/middleware"
	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
)

// newJSONContext builds an echo context carrying a JSON body, with the
// request validator installed the same way the router does it.
func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asAuthenticated simulates the Auth middleware having run.
func asAuthenticated(c echo.Context, user *domain.User) {
	c.Set(middleware.CtxUserID, user.ID)
	c.Set(middleware.CtxUsername, user.Username)
	c.Set(middleware.CtxRole, string(user.Role))
	c.Set(middleware.CtxUser, user)
}

func requireHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != want {
		t.Fatalf("expected status %d, got %d", want, he.Code)
	}
}

type stubAuthService struct {
	signUpInput ports.SignUpInput
	signUpUser  *domain.User
	signUpErr   error

	signInUser  *domain.User
	signInToken string
	signInErr   error
}

func (s *stubAuthService) SignUp(_ context.Context, input ports.SignUpInput) (*domain.User, error) {
	s.signUpInput = input
	if s.signUpErr != nil {
		return nil, s.signUpErr
	}
	return s.signUpUser, nil
}

func (s *stubAuthService) SignIn(_ context.Context, usernameOrEmail, password string) (string, *domain.User, error) {
	if s.signInErr != nil {
		return "", nil, s.signInErr
	}
	return s.signInToken, s.signInUser, nil
}

type stubPresenceStore struct {
	online map[string]bool
}

func newStubPresenceStore() *stubPresenceStore {
	return &stubPresenceStore{online: make(map[string]bool)}
}

func (p *stubPresenceStore) Touch(_ context.Context, userID string) error {
	p.online[userID] = true
	return nil
}

func (p *stubPresenceStore) Clear(_ context.Context, userID string) error {
	delete(p.online, userID)
	return nil
}

func (p *stubPresenceStore) Online(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(p.online))
	for id := range p.online {
		out = append(out, id)
	}
	return out, nil
}

type stubMessageService struct {
	sent        []*domain.Message
	sendErr     error
	thread      []*domain.Message
	inbox       []ports.InboxEntry
	markReadErr error
	markedRead  []string
}

func (s *stubMessageService) Send(_ context.Context, senderID, receiverID, content string) (*domain.Message, error) {
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	msg := &domain.Message{ID: "m1", Sender: senderID, Receiver: receiverID, Content: content}
	s.sent = append(s.sent, msg)
	return msg, nil
}

func (s *stubMessageService) Conversation(_ context.Context, userID, otherID string) ([]*domain.Message, error) {
	return s.thread, nil
}

func (s *stubMessageService) Inbox(_ context.Context, userID string) ([]ports.InboxEntry, error) {
	return s.inbox, nil
}

func (s *stubMessageService) MarkRead(_ context.Context, messageID string) error {
	if s.markReadErr != nil {
		return s.markReadErr
	}
	s.markedRead = append(s.markedRead, messageID)
	return nil
}
