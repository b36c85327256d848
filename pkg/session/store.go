package session

import (
	"context"
	"sync"

	"campusclone/pkg/user"

	"go.uber.org/zap"
)

type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

// ProfileFetcher is the slice of the API client Restore needs.
type ProfileFetcher interface {
	Me(ctx context.Context) (*user.User, error)
}

// Store holds the authenticated identity and the credential. It implements
// the adapter's TokenSource, so the authorization header is always read from
// here at call time. Transitions: Anonymous -> Authenticating ->
// {Authenticated, Anonymous+error}; Authenticated -> Anonymous on SignOut or
// a forced sign-out after a 401.
type Store struct {
	mu      *sync.Mutex
	user    *user.User
	token   string
	state   State
	lastErr string
	tokens  TokenStore
	logger  *zap.SugaredLogger
}

func NewStore(tokens TokenStore, logger *zap.SugaredLogger) *Store {
	return &Store{
		mu:     &sync.Mutex{},
		tokens: tokens,
		logger: logger,
	}
}

func (s *Store) BeginAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Authenticating
	s.lastErr = ""
}

// CompleteAuth stores the identity and credential and persists the token for
// session restoration on the next start.
func (s *Store) CompleteAuth(u *user.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = u
	s.token = token
	s.state = Authenticated
	s.lastErr = ""

	err := s.tokens.Save(token)
	if err != nil {
		s.logger.Warnw("cant persist credential", "error", err)
	}
}

func (s *Store) FailAuth(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	s.state = Anonymous
	s.lastErr = msg
}

// SignOut clears the identity, the in-memory credential and the persisted
// one. Safe to call repeatedly; the adapter's auth-failure callback may race
// a view-initiated sign-out.
func (s *Store) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	s.state = Anonymous

	err := s.tokens.Clear()
	if err != nil {
		s.logger.Warnw("cant clear persisted credential", "error", err)
	}
}

// SetToken adopts a credential before the identity is known, so the profile
// fetch that completes authentication can carry it.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// ApplyProfileEdit merges a partial profile update into the current identity
// without a re-login.
func (s *Store) ApplyProfileEdit(patch *user.Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return
	}

	patch.Apply(s.user)
}

// Restore performs the once-per-process startup reconciliation: with a
// persisted credential present, fetch the profile to verify it; any failure
// signs out so the host can send the user to the login screen. Without a
// persisted credential the store just stays Anonymous.
func (s *Store) Restore(ctx context.Context, profiles ProfileFetcher) error {
	token, err := s.tokens.Load()
	if err != nil {
		s.logger.Warnw("cant load persisted credential", "error", err)
		return nil
	}
	if token == "" {
		return nil
	}

	// the token is a JWT; a locally visible expiry saves the round trip
	expired, err := tokenExpired(token)
	if err == nil && expired {
		s.logger.Infow("persisted credential expired")
		s.SignOut()
		return ErrRestoreFailed
	}

	s.SetToken(token)
	s.BeginAuth()

	u, err := profiles.Me(ctx)
	if err != nil {
		s.logger.Warnw("credential verification failed", "error", err)
		s.SignOut()
		return ErrRestoreFailed
	}

	s.CompleteAuth(u, token)

	return nil
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Authenticated && s.token != ""
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) User() *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
