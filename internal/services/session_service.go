package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"kas/internal/core"
	"kas/internal/storage"
)

// ErrBadCredentials is the only login failure the gate reports. It
// deliberately does not say which of the two fields was wrong.
var ErrBadCredentials = errors.New("username atau password salah")

// SessionService is the session gate: one fixed credential pair, a
// persisted logged-in flag, and the theme preference.
type SessionService struct {
	adapter  storage.Adapter
	username string
	password string
}

func NewSessionService(adapter storage.Adapter, username, password string) *SessionService {
	return &SessionService{
		adapter:  adapter,
		username: username,
		password: password,
	}
}

// Login checks the credential pair and persists the logged-in flag.
// Both comparisons always run so timing does not reveal which field
// failed.
func (s *SessionService) Login(ctx context.Context, username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password))
	if userOK&passOK != 1 {
		slog.WarnContext(ctx, "Login failed")
		return ErrBadCredentials
	}

	sess, err := s.adapter.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	sess.LoggedIn = true
	if err := s.adapter.SaveSession(ctx, sess); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	slog.InfoContext(ctx, "Login succeeded")
	return nil
}

// Logout clears the logged-in flag, keeping the theme preference.
func (s *SessionService) Logout(ctx context.Context) error {
	sess, err := s.adapter.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	sess.LoggedIn = false
	if err := s.adapter.SaveSession(ctx, sess); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// LoggedIn reports the persisted flag. Read errors count as logged out.
func (s *SessionService) LoggedIn(ctx context.Context) bool {
	sess, err := s.adapter.LoadSession(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read session, treating as logged out", "error", err)
		return false
	}
	return sess.LoggedIn
}

// Theme returns the persisted theme preference.
func (s *SessionService) Theme(ctx context.Context) core.Theme {
	sess, err := s.adapter.LoadSession(ctx)
	if err != nil {
		return core.ThemeLight
	}
	return sess.Theme
}

// ToggleTheme flips the theme, persists it, and returns the new value.
func (s *SessionService) ToggleTheme(ctx context.Context) (core.Theme, error) {
	sess, err := s.adapter.LoadSession(ctx)
	if err != nil {
		return core.ThemeLight, fmt.Errorf("toggle theme: %w", err)
	}
	sess.Theme = sess.Theme.Other()
	if err := s.adapter.SaveSession(ctx, sess); err != nil {
		return sess.Theme, fmt.Errorf("toggle theme: %w", err)
	}
	return sess.Theme, nil
}
