package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/thinkcraftlab/studio/internal/logging"
	"github.com/thinkcraftlab/studio/pkg/shop"
)

const (
	SessionKey = "session"

	MinPasswordLength = 6
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

type persistedSession struct {
	User   *User  `json:"user"`
	Tokens Tokens `json:"tokens"`
}

// Session is the signed-in state of the client. It is persisted under
// SessionKey and restored by OpenSession.
type Session struct {
	client  *Client
	storage shop.Storage

	mu   sync.RWMutex
	user *User
}

// OpenSession restores a saved session into c. Missing or malformed data
// leaves the session signed out.
func OpenSession(ctx context.Context, c *Client, st shop.Storage) *Session {
	s := &Session{client: c, storage: st}
	l := logging.FromContext(ctx).With("store", "session")

	raw, err := st.Get(ctx, SessionKey)
	switch {
	case err != nil:
		l.Warn("session_unreadable", "error", err)
	case len(raw) > 0:
		var p persistedSession
		if err := json.Unmarshal(raw, &p); err != nil || p.User == nil || p.Tokens.RefreshToken == "" {
			l.Warn("session_malformed", "error", err)
			break
		}
		s.user = p.User
		c.SetTokens(p.Tokens)
	}

	c.OnRotate(s.persistTokens)
	return s
}

func (s *Session) Client() *Client { return s.client }

// Login signs in and persists the session. If the session cannot be saved
// the previous user and tokens are restored.
func (s *Session) Login(ctx context.Context, username, password string) (*User, error) {
	prevTokens := s.client.Tokens()
	res, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prevUser := s.user
	s.user = res.User
	if err := s.saveLocked(ctx, res.Tokens); err != nil {
		s.user = prevUser
		s.client.SetTokens(prevTokens)
		return nil, fmt.Errorf("save session: %w", err)
	}
	return res.User, nil
}

// Signup registers the account and signs straight in.
func (s *Session) Signup(ctx context.Context, username, email, password string) (*User, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if _, err := s.client.Signup(ctx, username, email, password); err != nil {
		return nil, err
	}
	return s.Login(ctx, username, password)
}

// Logout always clears the local session; the returned error is from the
// server side revoke.
func (s *Session) Logout(ctx context.Context) error {
	err := s.client.Logout(ctx)

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if dErr := s.storage.Delete(ctx, SessionKey); dErr != nil {
		return dErr
	}
	return err
}

func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) IsAuthenticated() bool {
	return s.User() != nil
}

// RequireUser gates profile-only actions.
func (s *Session) RequireUser() (*User, error) {
	u := s.User()
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	return u, nil
}

func (s *Session) persistTokens(ctx context.Context, t Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return
	}
	if err := s.saveLocked(ctx, t); err != nil {
		logging.FromContext(ctx).Warn("session_save_failed", "error", err)
	}
}

func (s *Session) saveLocked(ctx context.Context, t Tokens) error {
	raw, err := json.Marshal(persistedSession{User: s.user, Tokens: t})
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, SessionKey, raw)
}
