package session

import (
	"sync"

	"github.com/mnajar/platebook/internal/domain"
	"github.com/mnajar/platebook/internal/logger"
)

// Session is a read-only snapshot of the authentication state.
// Authenticated is derived: true iff a token is present.
type Session struct {
	Token         string
	Authenticated bool
}

// Store owns the client's authentication state. It is constructed once
// in main and passed by reference; only Login and Logout mutate it.
// Reads never fail. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	vault domain.Vault
	log   *logger.Logger
	token string
}

// NewStore creates a logged-out store backed by the given vault. Call
// Hydrate before the UI runs so authenticated-only affordances never
// flash the wrong state.
func NewStore(vault domain.Vault, log *logger.Logger) *Store {
	return &Store{vault: vault, log: log}
}

// Hydrate reads the vault once. A present, non-empty token leaves the
// store in the same state Login would have. Returning is the signal
// that hydration is complete.
func (s *Store) Hydrate() error {
	token, err := s.vault.Get()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	if token != "" {
		s.log.Debug("session: restored token from vault")
	}
	return nil
}

// Current returns the live session snapshot.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Session{Token: s.token, Authenticated: s.token != ""}
}

// Token returns the current bearer token, or "" when logged out.
// Satisfies the remote client's TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Login stores a non-empty token. The in-memory state changes first and
// is immediately visible to all holders of the store; the vault write
// follows and its failure is reported but does not roll the state back.
func (s *Store) Login(token string) error {
	if token == "" {
		return &domain.ValidationError{Field: "token", Reason: "must not be empty"}
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.vault.Set(token); err != nil {
		s.log.Warn("session: persisting token failed: %v", err)
		return err
	}
	s.log.Info("session: logged in")
	return nil
}

// Logout clears the state and removes the persisted token. Idempotent:
// logging out while already logged out is a no-op, not an error.
func (s *Store) Logout() error {
	s.mu.Lock()
	wasLoggedIn := s.token != ""
	s.token = ""
	s.mu.Unlock()

	if err := s.vault.Remove(); err != nil {
		s.log.Warn("session: removing token failed: %v", err)
		return err
	}
	if wasLoggedIn {
		s.log.Info("session: logged out")
	}
	return nil
}
