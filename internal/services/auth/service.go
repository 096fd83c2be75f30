package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bharatshaala/wishsync/internal/events"
	"github.com/bharatshaala/wishsync/internal/models"
	"github.com/bharatshaala/wishsync/internal/transport"
)

// Watcher observes authentication-state transitions. It is invoked only on
// an edge: prev and cur always differ. The session is non-nil exactly when
// cur is true.
type Watcher func(prev, cur bool, session *models.Session)

// Service handles authentication against the storefront and publishes the
// is-authenticated signal to registered watchers.
type Service struct {
	transport transport.Transport
	logger    *events.Logger

	mu        sync.Mutex
	session   *models.Session
	tokenFile string
	watchers  []Watcher
}

// NewService creates an auth service.
func NewService(t transport.Transport, tokenFile string, logger *events.Logger) *Service {
	return &Service{
		transport: t,
		tokenFile: tokenFile,
		logger:    logger.WithField("service", "auth"),
	}
}

// Watch registers a watcher for authentication transitions.
func (s *Service) Watch(w Watcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, w)
}

// Login authenticates with the storefront and publishes the transition.
func (s *Service) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("email and password required")
	}

	s.logger.WithField("email", email).Info("Logging in")

	resp, err := s.transport.PostJSON(ctx, "/auth/login", models.AuthRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}

	token, ok := resp["token"].(string)
	if !ok || token == "" {
		return fmt.Errorf("invalid login response: missing token")
	}

	userID, _ := resp["user_id"].(string)
	if userID == "" {
		return fmt.Errorf("invalid login response: missing user_id")
	}

	expiresStr, _ := resp["expires_at"].(string)
	expiresAt, _ := time.Parse(time.RFC3339, expiresStr)
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(24 * time.Hour) // Default expiry
	}

	session := &models.Session{
		UserID:    userID,
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	s.mu.Lock()
	prev := s.authenticatedLocked()
	s.session = session
	s.transport.SetToken(token)
	watchers := append([]Watcher(nil), s.watchers...)
	s.mu.Unlock()

	if err := s.saveSession(session); err != nil {
		s.logger.WithError(err).Warn("Failed to save session")
	}

	s.logger.WithField("user_id", userID).Info("Login successful")

	if !prev {
		for _, w := range watchers {
			w(false, true, session)
		}
	}
	return nil
}

// Logout clears authentication and publishes the transition.
func (s *Service) Logout(ctx context.Context) error {
	s.logger.Info("Logging out")

	s.mu.Lock()
	prev := s.authenticatedLocked()
	hadSession := s.session != nil && !s.session.IsExpired()
	s.session = nil
	s.transport.SetToken("")
	watchers := append([]Watcher(nil), s.watchers...)
	s.mu.Unlock()

	if hadSession {
		// Best effort; a failed server logout still logs out locally.
		if _, err := s.transport.PostJSON(ctx, "/auth/logout", nil); err != nil {
			s.logger.WithError(err).Warn("Server logout failed")
		}
	}

	if s.tokenFile != "" {
		_ = os.Remove(s.tokenFile)
	}

	if prev {
		for _, w := range watchers {
			w(true, false, nil)
		}
	}
	return nil
}

// Restore loads a persisted session from disk, if one exists and has not
// expired, and publishes the transition.
func (s *Service) Restore() error {
	if s.tokenFile == "" {
		return models.ErrNotAuthenticated
	}

	data, err := os.ReadFile(s.tokenFile)
	if err != nil {
		return models.ErrNotAuthenticated
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("parse session file: %w", err)
	}

	if session.IsExpired() {
		_ = os.Remove(s.tokenFile)
		return models.ErrNotAuthenticated
	}

	s.mu.Lock()
	prev := s.authenticatedLocked()
	s.session = &session
	s.transport.SetToken(session.Token)
	watchers := append([]Watcher(nil), s.watchers...)
	s.mu.Unlock()

	s.logger.WithField("user_id", session.UserID).Debug("Session restored")

	if !prev {
		for _, w := range watchers {
			w(false, true, &session)
		}
	}
	return nil
}

// IsAuthenticated reports the current value of the authentication signal.
func (s *Service) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticatedLocked()
}

// Session returns the current session, or ErrNotAuthenticated.
func (s *Service) Session() (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticatedLocked() {
		return nil, models.ErrNotAuthenticated
	}
	return s.session, nil
}

func (s *Service) authenticatedLocked() bool {
	return s.session != nil && !s.session.IsExpired()
}

func (s *Service) saveSession(session *models.Session) error {
	if s.tokenFile == "" {
		return nil
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.tokenFile), 0700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}

	// Save with restricted permissions
	return os.WriteFile(s.tokenFile, data, 0600)
}
