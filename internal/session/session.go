// Package session owns the credential lifecycle: login, registration,
// logout, token refresh, and restoration from the durable record.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskflow/internal/apierr"
	"taskflow/internal/notify"
	"taskflow/internal/service"
)

// User identifies the logged-in account.
type User struct {
	Username string `json:"username"`
}

// Event is a session state transition, emitted after the transition
// has fully taken effect.
type Event int

const (
	// Started means a session became active (login, register, restore).
	Started Event = iota

	// Refreshed means the token was replaced but the session stayed active.
	Refreshed

	// Ended means the session was destroyed.
	Ended
)

// Record is the durable session store. Token and user are always
// written and cleared together.
type Record interface {
	Load() (token, user string, err error)
	Save(token, user string) error
	Clear() error
}

// Session is the single source of truth for who is logged in, and the
// only component permitted to write the durable session record.
type Session struct {
	svc      service.Service
	record   Record
	notifier notify.Notifier

	mu        sync.Mutex
	token     string
	user      *User
	listeners []func(Event)
}

// New creates a Session. notifier may be notify.Discard.
func New(svc service.Service, record Record, notifier notify.Notifier) *Session {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Session{svc: svc, record: record, notifier: notifier}
}

// Subscribe registers a listener for session transitions. Listeners
// are invoked synchronously after each transition, outside the
// session's lock.
func (s *Session) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Session) emit(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), len(s.listeners))
	copy(fns, s.listeners)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// Active reports whether both token and user are present.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil
}

// Token returns the current bearer token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the logged-in user, if any.
func (s *Session) User() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Restore adopts a previously stored session, if the durable record
// holds both token and user. Run once at startup. No network call;
// a corrupt or partial record is treated as logged out, never as an
// error.
func (s *Session) Restore() bool {
	token, rawUser, err := s.record.Load()
	if err != nil || token == "" || rawUser == "" {
		return false
	}
	var u User
	if err := json.Unmarshal([]byte(rawUser), &u); err != nil || u.Username == "" {
		return false
	}

	s.mu.Lock()
	s.token = token
	s.user = &u
	s.mu.Unlock()

	s.emit(Started)
	return true
}

// Login exchanges credentials for a fresh token, writes the session
// through to the durable record, and activates it. On failure the
// session remains whatever it was before the call.
func (s *Session) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return apierr.New(apierr.ValidationFailed, "username and password required")
	}

	token, err := s.svc.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := s.adopt(token, username); err != nil {
		return err
	}

	s.emit(Started)
	s.notifier.Notify("Login successful")
	return nil
}

// Register creates an account. On success the returned token is an
// immediate authenticated session; same contract as Login otherwise.
func (s *Session) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return apierr.New(apierr.ValidationFailed, "username and password required")
	}

	token, err := s.svc.Register(ctx, username, password)
	if err != nil {
		return err
	}
	if err := s.adopt(token, username); err != nil {
		return err
	}

	s.emit(Started)
	s.notifier.Notify("Registration successful! You are now logged in.")
	return nil
}

// adopt writes the session through to durable storage, then to memory.
// The durable write comes first so an active session always implies a
// matching record.
func (s *Session) adopt(token, username string) error {
	u := User{Username: username}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.record.Save(token, string(raw)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.user = &u
	s.mu.Unlock()
	return nil
}

// Logout clears the durable record and the in-memory session.
// Idempotent; never fails.
func (s *Session) Logout() {
	_ = s.record.Clear()

	s.mu.Lock()
	wasActive := s.token != "" || s.user != nil
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if wasActive {
		s.emit(Ended)
		s.notifier.Notify("Logout successful")
	}
}

// RefreshToken replaces the token in memory and durable storage. Any
// failure forces Logout: an invalid or expired token is
// indistinguishable from no session.
func (s *Session) RefreshToken(ctx context.Context) error {
	s.mu.Lock()
	old := s.token
	var username string
	if s.user != nil {
		username = s.user.Username
	}
	s.mu.Unlock()

	if old == "" {
		return apierr.New(apierr.AuthRequired, "no token to refresh")
	}

	token, err := s.svc.Refresh(ctx, old)
	if err != nil {
		s.Logout()
		return err
	}
	if err := s.adopt(token, username); err != nil {
		s.Logout()
		return err
	}

	s.emit(Refreshed)
	return nil
}

// TokenExpiresAt returns the exp claim of the current token. The token
// is parsed without signature verification; only the server ever
// validates it. Returns false for no token, an opaque token, or a
// token without exp.
func (s *Session) TokenExpiresAt() (time.Time, bool) {
	tok := s.Token()
	if tok == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// NeedsRefresh reports whether the token expires within the given
// window. Opaque tokens never report true.
func (s *Session) NeedsRefresh(within time.Duration) bool {
	exp, ok := s.TokenExpiresAt()
	if !ok {
		return false
	}
	return time.Until(exp) < within
}
