// Package session owns the authentication token and derived identity.
// Nothing outside this package reads the raw token except the resource
// client, which receives it through an oauth2.TokenSource.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"performate/internal/api"
	"performate/internal/config"
)

// ErrInvalidCredentials is returned by Login when the backend rejects
// the email/password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrPasswordMismatch is returned by Register before any request is
// sent when the two password fields differ.
var ErrPasswordMismatch = errors.New("passwords do not match")

// ErrNotAuthenticated is returned when an operation needs a session and
// none is present.
var ErrNotAuthenticated = errors.New("not logged in")

// RegisterRequest is the registration form payload.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// Identity is the authenticated user as reported by /users/me/.
type Identity struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Store holds the persisted token pair and the derived identity.
type Store struct {
	cfg    *config.Config
	client *api.Client // unauthenticated
	log    zerolog.Logger

	mu       sync.RWMutex
	token    *oauth2.Token
	identity Identity
	authed   bool
}

// NewStore creates a session store over the given config. The store
// starts logged out; call Load or Init to pick up a persisted token.
func NewStore(cfg *config.Config, log zerolog.Logger) *Store {
	return &Store{
		cfg:    cfg,
		client: api.New(cfg.APIRoot, nil, log),
		log:    log,
	}
}

// Load reads the persisted token file without talking to the backend.
// A missing or unreadable file leaves the store logged out.
func (s *Store) Load() {
	data, err := os.ReadFile(s.cfg.TokenPath())
	if err != nil {
		return
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		s.log.Debug().Err(err).Msg("unreadable token file")
		return
	}
	if tok.AccessToken == "" {
		return
	}
	s.mu.Lock()
	s.token = &tok
	s.authed = true
	s.mu.Unlock()
}

// Init loads the persisted token and, when one is present, attempts the
// identity fetch. Any failure forces the session to logged out without
// surfacing an error: session expiry on startup is silent.
func (s *Store) Init(ctx context.Context) {
	s.Load()
	if !s.Authenticated() {
		return
	}
	if err := s.fetchIdentity(ctx); err != nil {
		s.log.Debug().Err(err).Msg("identity fetch failed, logging out")
		s.Logout()
	}
}

// Login exchanges credentials for a token pair, persists it and fetches
// the identity. A 401 maps to ErrInvalidCredentials; the form stays
// open for the caller to retry.
func (s *Store) Login(ctx context.Context, email, password string) error {
	var pair tokenPair
	err := s.client.PostJSON(ctx, "/token/", map[string]string{
		"email":    email,
		"password": password,
	}, &pair)
	if err != nil {
		var serr *api.StatusError
		if errors.As(err, &serr) && serr.Code == http.StatusUnauthorized {
			return ErrInvalidCredentials
		}
		return err
	}
	if err := s.adopt(pair); err != nil {
		return err
	}
	if err := s.fetchIdentity(ctx); err != nil {
		// The token is good even if the identity fetch hiccuped.
		s.log.Debug().Err(err).Msg("identity fetch after login failed")
	}
	return nil
}

// Register validates the password pair locally, then creates the
// account. The backend returns a token pair, so a successful
// registration leaves the user logged in.
func (s *Store) Register(ctx context.Context, req RegisterRequest) error {
	if req.Password != req.Password2 {
		return ErrPasswordMismatch
	}
	var pair tokenPair
	if err := s.client.PostJSON(ctx, "/users/register/", req, &pair); err != nil {
		return err
	}
	if err := s.adopt(pair); err != nil {
		return err
	}
	if err := s.fetchIdentity(ctx); err != nil {
		s.log.Debug().Err(err).Msg("identity fetch after registration failed")
	}
	return nil
}

// Logout clears the token and identity and removes the token file.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = nil
	s.identity = Identity{}
	s.authed = false
	s.mu.Unlock()
	if err := s.cfg.RemoveToken(); err != nil && !os.IsNotExist(err) {
		s.log.Debug().Err(err).Msg("failed to remove token file")
	}
}

// Authenticated reports whether a session token is held.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authed
}

// DisplayName returns the user's first name, or empty when unknown.
func (s *Store) DisplayName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.FirstName
}

// Identity returns the fetched identity.
func (s *Store) Identity() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// TokenSource returns the credential source for the resource client.
// The source refreshes the access token through the backend when it
// has expired; a failed refresh reads as session expiry.
func (s *Store) TokenSource() oauth2.TokenSource {
	return &storeTokenSource{store: s}
}

func (s *Store) adopt(pair tokenPair) error {
	if pair.Access == "" {
		return errors.New("token response missing access token")
	}
	tok := &oauth2.Token{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
		TokenType:    "Bearer",
	}
	s.mu.Lock()
	s.token = tok
	s.authed = true
	s.mu.Unlock()
	return s.persist(tok)
}

func (s *Store) persist(tok *oauth2.Token) error {
	if err := s.cfg.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.cfg.TokenPath(), data, 0600)
}

func (s *Store) fetchIdentity(ctx context.Context) error {
	authed := api.New(s.cfg.APIRoot, s.TokenSource(), s.log)
	var id Identity
	if err := authed.GetJSON(ctx, "/users/me/", &id); err != nil {
		return err
	}
	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()
	return nil
}
