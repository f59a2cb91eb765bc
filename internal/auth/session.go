// Package auth holds the signed in identity. A Session is created at
// startup from persisted storage, passed to whoever needs it and emptied
// by Logout or by a 401 from the API.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/infra/logger"
	"github.com/gympro/gympro-client/internal/storage"
)

type Session struct {
	api   *api.Client
	store storage.Storage
	log   *slog.Logger
	now   func() time.Time

	mu   sync.RWMutex
	user *User
}

func NewSession(c *api.Client, store storage.Storage, log *slog.Logger) *Session {
	if log == nil {
		log = logger.Discard()
	}
	return &Session{api: c, store: store, log: log, now: time.Now}
}

// Restore loads the persisted identity. A corrupt identity or an expired
// JWT clears both keys; an opaque (non JWT) token is kept as is.
func (s *Session) Restore(ctx context.Context) error {
	token, hasToken, err := s.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return err
	}
	raw, hasUser, err := s.store.Get(ctx, storage.KeyUser)
	if err != nil {
		return err
	}
	if !hasToken || !hasUser || token == "" {
		s.setUser(nil)
		return nil
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.Role == "" {
		s.log.Warn("stored identity unreadable, clearing", "err", err)
		s.setUser(nil)
		return storage.Clear(ctx, s.store)
	}
	if s.expired(token) {
		s.log.Info("stored token expired, clearing")
		s.setUser(nil)
		return storage.Clear(ctx, s.store)
	}
	s.setUser(&u)
	return nil
}

func (s *Session) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(s.now())
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	Token       string `json:"token"`
	User        User   `json:"user"`
}

// Login returns false for rejected credentials or any error response. An
// error is returned only when the request itself could not be made, or for
// client side validation.
func (s *Session) Login(ctx context.Context, email, password string) (bool, error) {
	if err := requireEmail(email); err != nil {
		return false, err
	}
	if password == "" {
		return false, invalid("password", "Password is required")
	}

	var resp loginResponse
	err := s.api.Post(ctx, "/auth/login", credentials{Email: strings.TrimSpace(email), Password: password}, &resp)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			s.log.Info("login rejected", "email", email, "status", apiErr.Status)
			return false, nil
		}
		return false, err
	}

	token := resp.AccessToken
	if token == "" {
		token = resp.Token
	}
	if token == "" || resp.User.Role == "" {
		s.log.Warn("login response without token or role")
		return false, nil
	}

	raw, err := json.Marshal(resp.User)
	if err != nil {
		return false, err
	}
	if err := s.store.Set(ctx, storage.KeyToken, token); err != nil {
		return false, err
	}
	if err := s.store.Set(ctx, storage.KeyUser, string(raw)); err != nil {
		return false, err
	}
	u := resp.User
	s.setUser(&u)
	s.log.Info("logged in", "user_id", u.ID, "role", u.Role)
	return true, nil
}

// Logout tells the backend (failures are only logged) and then always
// clears the local credentials.
func (s *Session) Logout(ctx context.Context) error {
	if s.IsAuthenticated() {
		if err := s.api.Post(ctx, "/auth/logout", nil, nil); err != nil {
			s.log.Warn("server logout failed", "err", err)
		}
	}
	s.setUser(nil)
	return storage.Clear(context.WithoutCancel(ctx), s.store)
}

// Invalidate drops the in-memory identity after the API client already
// wiped storage on a 401.
func (s *Session) Invalidate() { s.setUser(nil) }

func (s *Session) Current() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAuthenticated() bool { return s.Current() != nil }

func (s *Session) setUser(u *User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}
