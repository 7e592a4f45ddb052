package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
)

// stubUserRepo is an in-memory UserRepository enforcing the same uniqueness
// rules as the real collection.
type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsernameOrEmail(_ context.Context, q string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == q || u.Email == q {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneUser(r.users[id]))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// stubPresence records presence calls.
type stubPresence struct {
	online map[string]bool
}

func newStubPresence() *stubPresence {
	return &stubPresence{online: make(map[string]bool)}
}

func (p *stubPresence) Touch(_ context.Context, userID string) error {
	p.online[userID] = true
	return nil
}

func (p *stubPresence) Clear(_ context.Context, userID string) error {
	delete(p.online, userID)
	return nil
}

func (p *stubPresence) Online(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(p.online))
	for id := range p.online {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// stubMessageRepo is an in-memory MessageRepository implementing the real
// ordering and grouping contracts so service tests exercise them.
type stubMessageRepo struct {
	messages []*domain.Message
	users    *stubUserRepo
	nextID   int
}

func newStubMessageRepo(users *stubUserRepo) *stubMessageRepo {
	return &stubMessageRepo{users: users}
}

func cloneMessage(m *domain.Message) *domain.Message {
	clone := *m
	return &clone
}

func (r *stubMessageRepo) Insert(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	r.nextID++
	created := cloneMessage(msg)
	created.ID = fmt.Sprintf("msg-%d", r.nextID)
	r.messages = append(r.messages, cloneMessage(created))
	return created, nil
}

func (r *stubMessageRepo) FindByID(_ context.Context, id string) (*domain.Message, error) {
	for _, m := range r.messages {
		if m.ID == id {
			return cloneMessage(m), nil
		}
	}
	return nil, domain.ErrMessageNotFound
}

func (r *stubMessageRepo) Conversation(_ context.Context, a, b string) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range r.messages {
		if (m.Sender == a && m.Receiver == b) || (m.Sender == b && m.Receiver == a) {
			out = append(out, cloneMessage(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (r *stubMessageRepo) InboxOverview(_ context.Context, userID string) ([]ports.InboxEntry, error) {
	latest := make(map[string]*domain.Message)
	for _, m := range r.messages {
		var other string
		switch userID {
		case m.Sender:
			other = m.Receiver
		case m.Receiver:
			other = m.Sender
		default:
			continue
		}
		if cur, ok := latest[other]; !ok || m.Timestamp.After(cur.Timestamp) {
			latest[other] = m
		}
	}

	entries := make([]ports.InboxEntry, 0, len(latest))
	for other, m := range latest {
		u, ok := r.users.users[other]
		if !ok {
			continue
		}
		entries = append(entries, ports.InboxEntry{
			User: ports.InboxUser{
				ID:        u.ID,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Role:      u.Role,
			},
			LastMessage:          m.Content,
			LastMessageTimestamp: m.Timestamp,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].LastMessageTimestamp.Equal(entries[j].LastMessageTimestamp) {
			return entries[i].LastMessageTimestamp.After(entries[j].LastMessageTimestamp)
		}
		return entries[i].User.ID < entries[j].User.ID
	})
	return entries, nil
}

func (r *stubMessageRepo) MarkRead(_ context.Context, id string) error {
	for _, m := range r.messages {
		if m.ID == id {
			m.Read = true
			return nil
		}
	}
	return domain.ErrMessageNotFound
}
