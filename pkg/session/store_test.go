package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"campusclone/pkg/user"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
)

func newTestStore() (*Store, *MemoryTokenStore) {
	tokens := NewMemoryTokenStore()
	return NewStore(tokens, zap.NewNop().Sugar()), tokens
}

func mintToken(t *testing.T, expiresAt int64) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{ExpiresAt: expiresAt})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("cant sign test token: %v", err)
	}

	return signed
}

type fakeProfileFetcher struct {
	user  *user.User
	err   error
	calls int
}

func (f *fakeProfileFetcher) Me(ctx context.Context) (*user.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func TestAuthStateMachine(t *testing.T) {
	s, _ := newTestStore()

	if s.State() != Anonymous || s.IsAuthenticated() {
		t.Fatalf("expected fresh store anonymous")
	}

	s.BeginAuth()
	if s.State() != Authenticating {
		t.Fatalf("expected Authenticating, got %v", s.State())
	}

	s.CompleteAuth(&user.User{ID: "u1", Username: "alice"}, "tok-1")
	if !s.IsAuthenticated() || s.User().Username != "alice" {
		t.Fatalf("expected authenticated alice")
	}

	s.SignOut()
	if s.IsAuthenticated() || s.User() != nil || s.Token() != "" {
		t.Fatalf("expected sign-out to clear everything")
	}
}

func TestFailAuthRecordsError(t *testing.T) {
	s, _ := newTestStore()

	s.BeginAuth()
	s.FailAuth("invalid credentials")

	if s.State() != Anonymous {
		t.Fatalf("expected Anonymous after failure")
	}
	if s.LastError() != "invalid credentials" {
		t.Fatalf("expected error recorded, got %q", s.LastError())
	}

	s.BeginAuth()
	if s.LastError() != "" {
		t.Fatalf("expected BeginAuth to clear the prior error")
	}
}

func TestCompleteAuthPersistsToken(t *testing.T) {
	s, tokens := newTestStore()

	s.CompleteAuth(&user.User{ID: "u1"}, "tok-1")

	persisted, _ := tokens.Load()
	if persisted != "tok-1" {
		t.Fatalf("expected token persisted, got %q", persisted)
	}

	s.SignOut()
	persisted, _ = tokens.Load()
	if persisted != "" {
		t.Fatalf("expected persisted token cleared, got %q", persisted)
	}
}

func TestTokenReadFreshAfterSignOut(t *testing.T) {
	s, _ := newTestStore()
	s.CompleteAuth(&user.User{ID: "u1"}, "tok-1")

	s.SignOut()

	// the adapter reads the credential at call time; after sign-out it
	// must see nothing
	if s.Token() != "" {
		t.Fatalf("expected empty token after sign-out, got %q", s.Token())
	}
}

func TestApplyProfileEdit(t *testing.T) {
	s, _ := newTestStore()
	s.CompleteAuth(&user.User{ID: "u1", Name: "Alice", Bio: "old bio"}, "tok-1")

	name := "Alice Chen"
	s.ApplyProfileEdit(&user.Patch{Name: &name})

	if s.User().Name != "Alice Chen" {
		t.Fatalf("expected name merged, got %q", s.User().Name)
	}
	if s.User().Bio != "old bio" {
		t.Fatalf("expected untouched field preserved, got %q", s.User().Bio)
	}
	if !s.IsAuthenticated() {
		t.Fatalf("profile edit must not require re-login")
	}
}

func TestRestoreWithoutToken(t *testing.T) {
	s, _ := newTestStore()
	fetcher := &fakeProfileFetcher{}

	err := s.Restore(context.Background(), fetcher)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if s.State() != Anonymous || fetcher.calls != 0 {
		t.Fatalf("expected anonymous without a network call")
	}
}

func TestRestoreSuccess(t *testing.T) {
	s, tokens := newTestStore()
	token := mintToken(t, time.Now().Add(time.Hour).Unix())
	tokens.Save(token)

	fetcher := &fakeProfileFetcher{user: &user.User{ID: "u1", Username: "alice"}}

	err := s.Restore(context.Background(), fetcher)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if !s.IsAuthenticated() || s.User().Username != "alice" {
		t.Fatalf("expected restored session")
	}
	if s.Token() != token {
		t.Fatalf("expected original token kept")
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected exactly one profile fetch, got %d", fetcher.calls)
	}
}

func TestRestoreExpiredTokenSkipsFetch(t *testing.T) {
	s, tokens := newTestStore()
	tokens.Save(mintToken(t, time.Now().Add(-time.Hour).Unix()))

	fetcher := &fakeProfileFetcher{user: &user.User{ID: "u1"}}

	err := s.Restore(context.Background(), fetcher)
	if err != ErrRestoreFailed {
		t.Fatalf("expected ErrRestoreFailed, got %v", err)
	}

	if fetcher.calls != 0 {
		t.Fatalf("expected no network call for a locally expired token")
	}
	if s.IsAuthenticated() {
		t.Fatalf("expected anonymous state")
	}
	persisted, _ := tokens.Load()
	if persisted != "" {
		t.Fatalf("expected stale token cleared")
	}
}

func TestRestoreFetchFailureSignsOut(t *testing.T) {
	s, tokens := newTestStore()
	tokens.Save(mintToken(t, time.Now().Add(time.Hour).Unix()))

	fetcher := &fakeProfileFetcher{err: fmt.Errorf("server says no")}

	err := s.Restore(context.Background(), fetcher)
	if err != ErrRestoreFailed {
		t.Fatalf("expected ErrRestoreFailed, got %v", err)
	}

	if s.IsAuthenticated() || s.Token() != "" {
		t.Fatalf("expected signed out after failed verification")
	}
	persisted, _ := tokens.Load()
	if persisted != "" {
		t.Fatalf("expected persisted token cleared")
	}
}

func TestTokenExpired(t *testing.T) {
	cases := []struct {
		expiresAt int64
		want      bool
	}{
		{time.Now().Add(time.Hour).Unix(), false},
		{time.Now().Add(-time.Hour).Unix(), true},
		{0, false},
	}

	for i, c := range cases {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{ExpiresAt: c.expiresAt})
		signed, err := token.SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("case %d: cant sign: %v", i, err)
		}

		expired, err := tokenExpired(signed)
		if err != nil {
			t.Fatalf("case %d: unexpected error %v", i, err)
		}
		if expired != c.want {
			t.Fatalf("case %d: expected expired=%v", i, c.want)
		}
	}
}

func TestTokenExpiredGarbage(t *testing.T) {
	_, err := tokenExpired("not-a-jwt")
	if err == nil {
		t.Fatalf("expected an error for a malformed token")
	}
}
