package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// expirySkew is subtracted from the access token's exp claim so a token
// about to expire is refreshed before the request goes out.
const expirySkew = 30 * time.Second

// storeTokenSource yields the store's current access token, refreshing
// it through /token/refresh/ once the JWT exp claim has passed.
type storeTokenSource struct {
	store *Store
}

func (ts *storeTokenSource) Token() (*oauth2.Token, error) {
	ts.store.mu.RLock()
	tok := ts.store.token
	ts.store.mu.RUnlock()

	if tok == nil {
		return nil, ErrNotAuthenticated
	}
	if !accessExpired(tok.AccessToken) {
		return tok, nil
	}
	return ts.refresh(tok)
}

func (ts *storeTokenSource) refresh(tok *oauth2.Token) (*oauth2.Token, error) {
	if tok.RefreshToken == "" {
		return nil, ErrNotAuthenticated
	}

	var resp struct {
		Access string `json:"access"`
	}
	err := ts.store.client.PostJSON(context.Background(), "/token/refresh/", map[string]string{
		"refresh": tok.RefreshToken,
	}, &resp)
	if err != nil || resp.Access == "" {
		ts.store.log.Debug().Err(err).Msg("token refresh failed")
		return nil, ErrNotAuthenticated
	}

	fresh := &oauth2.Token{
		AccessToken:  resp.Access,
		RefreshToken: tok.RefreshToken,
		TokenType:    "Bearer",
	}
	ts.store.mu.Lock()
	ts.store.token = fresh
	ts.store.mu.Unlock()
	if err := ts.store.persist(fresh); err != nil {
		ts.store.log.Debug().Err(err).Msg("failed to persist refreshed token")
	}
	return fresh, nil
}

// accessExpired inspects the JWT exp claim without verifying the
// signature; verification is the backend's job. Tokens without a
// parseable exp are treated as live and left for the backend to judge.
func accessExpired(access string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(access, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().Add(expirySkew).After(exp.Time)
}
