package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt"

	"github.com/jfuentesr/butaca/entities"
	"github.com/jfuentesr/butaca/localstore"
	"github.com/jfuentesr/butaca/observability"
)

const (
	tokenKey = "authToken"
	userKey  = "currentUser"
)

var ErrNoSession = errors.New("no active session")

// Authenticator is the slice of the backend the session store needs.
type Authenticator interface {
	Login(ctx context.Context, creds entities.Credentials) (entities.LoginResponse, error)
	Register(ctx context.Context, reg entities.Registration) error
}

type Session struct {
	Token string
	User  entities.User
}

// Store owns the current session: who is logged in and with which
// token. It persists both to the local store so a restart restores the
// session, and notifies subscribers on every change. Token() makes it
// usable directly as the HTTP client's token source.
type Store struct {
	mu       sync.Mutex
	api      Authenticator
	local    localstore.Store
	log      observability.Logger
	clock    func() time.Time
	current  *Session
	onChange []func(*Session)
	onLogout []func()
}

func NewStore(api Authenticator, local localstore.Store, log observability.Logger) *Store {
	return &Store{
		api:   api,
		local: local,
		log:   log,
		clock: time.Now,
	}
}

// Restore loads a persisted session, if any. Token and user must both
// be present and parseable; a half-written pair is wiped instead of
// restored.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, haveToken := s.local.Get(tokenKey)
	rawUser, haveUser := s.local.Get(userKey)
	if !haveToken || !haveUser {
		if haveToken || haveUser {
			s.wipeLocked()
		}
		return
	}

	var user entities.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.log.Warn("stored user is unreadable, discarding session")
		s.wipeLocked()
		return
	}

	s.current = &Session{Token: token, User: user}
	s.log.WithField("correo", user.Correo).Debug("session restored")
	s.notifyLocked()
}

func (s *Store) Login(ctx context.Context, correo, contrasena string) (entities.User, error) {
	resp, err := s.api.Login(ctx, entities.Credentials{Correo: correo, Contrasena: contrasena})
	if err != nil {
		return entities.User{}, err
	}
	return s.adopt(resp)
}

// Register creates the account but establishes no session; the user
// logs in afterwards with the new credentials.
func (s *Store) Register(ctx context.Context, reg entities.Registration) error {
	return s.api.Register(ctx, reg)
}

func (s *Store) adopt(resp entities.LoginResponse) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rawUser, err := json.Marshal(resp.User)
	if err != nil {
		return entities.User{}, errors.Wrap(err, "encoding user")
	}
	if err := s.local.Set(tokenKey, resp.AccessToken); err != nil {
		return entities.User{}, err
	}
	if err := s.local.Set(userKey, string(rawUser)); err != nil {
		return entities.User{}, err
	}

	s.current = &Session{Token: resp.AccessToken, User: resp.User}
	s.log.WithField("correo", resp.User.Correo).Info("logged in")
	s.notifyLocked()
	return resp.User, nil
}

// Logout drops the session and runs the logout hooks. Hooks clear
// dependent state such as the cart and any seat selection.
func (s *Store) Logout() {
	s.mu.Lock()
	s.wipeLocked()
	s.current = nil
	hooks := append([]func(){}, s.onLogout...)
	s.notifyLocked()
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

func (s *Store) Current() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Token implements the HTTP client's token source. Anonymous while no
// session is active.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *Store) User() (entities.User, error) {
	sess, ok := s.Current()
	if !ok {
		return entities.User{}, ErrNoSession
	}
	return sess.User, nil
}

// Expired peeks at the token's exp claim without verifying the
// signature. Only the backend can truly verify; this is just enough to
// prompt a re-login before a request bounces. Tokens without a readable
// exp are treated as live.
func (s *Store) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false
	}

	parser := jwt.Parser{}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.current.Token, claims); err != nil {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return s.clock().After(time.Unix(int64(exp), 0))
}

// OnChange registers a subscriber notified after every session change,
// with the new session or nil after logout.
func (s *Store) OnChange(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *Store) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

func (s *Store) wipeLocked() {
	if err := s.local.Delete(tokenKey); err != nil {
		s.log.Warn("deleting stored token: ", err)
	}
	if err := s.local.Delete(userKey); err != nil {
		s.log.Warn("deleting stored user: ", err)
	}
}

func (s *Store) notifyLocked() {
	for _, fn := range s.onChange {
		fn(s.current)
	}
}
