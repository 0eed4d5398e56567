package session_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"runtime"
	"testing"
	"time"

	"performate/internal/config"
	"performate/internal/logging"
	"performate/internal/session"
)

func newStore(t *testing.T, apiRoot string) (*session.Store, *config.Config) {
	t.Helper()
	cfg := &config.Config{Dir: t.TempDir(), APIRoot: apiRoot}
	return session.NewStore(cfg, logging.Discard()), cfg
}

// expiredJWT builds an unsigned token whose exp claim is in the past.
// The store only inspects the claim; signatures are the backend's job.
func expiredJWT(t *testing.T) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(
		fmt.Sprintf(`{"exp":%d}`, time.Now().Add(-time.Hour).Unix())))
	return header + "." + payload + ".sig"
}

func TestLogin_PersistsTokenAndIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/":
			var creds map[string]string
			json.NewDecoder(r.Body).Decode(&creds)
			if creds["email"] != "ada@example.com" || creds["password"] != "hunter2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"access": "acc-1", "refresh": "ref-1"})
		case "/users/me/":
			if r.Header.Get("Authorization") != "Bearer acc-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"id": 7, "first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	store, cfg := newStore(t, srv.URL)
	if err := store.Login(context.Background(), "ada@example.com", "hunter2"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if !store.Authenticated() {
		t.Error("store should be authenticated after login")
	}
	if store.DisplayName() != "Ada" {
		t.Errorf("display name = %q, want Ada", store.DisplayName())
	}

	info, err := os.Stat(cfg.TokenPath())
	if err != nil {
		t.Fatalf("token file: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("token file mode = %o, want 0600", info.Mode().Perm())
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "No active account found"})
	}))
	defer srv.Close()

	store, cfg := newStore(t, srv.URL)
	err := store.Login(context.Background(), "ada@example.com", "wrong")
	if !errors.Is(err, session.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if store.Authenticated() {
		t.Error("store must stay logged out")
	}
	if cfg.HasToken() {
		t.Error("no token file should be written")
	}
}

func TestRegister_PasswordMismatchSendsNothing(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, _ := newStore(t, srv.URL)
	err := store.Register(context.Background(), session.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Password: "one", Password2: "two",
	})
	if !errors.Is(err, session.ErrPasswordMismatch) {
		t.Fatalf("err = %v, want ErrPasswordMismatch", err)
	}
	if requests != 0 {
		t.Errorf("requests = %d, want 0", requests)
	}
}

func TestRegister_SuccessLeavesLoggedIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/register/":
			json.NewEncoder(w).Encode(map[string]string{"access": "acc-2", "refresh": "ref-2"})
		case "/users/me/":
			json.NewEncoder(w).Encode(map[string]any{"id": 1, "first_name": "Ada"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	store, _ := newStore(t, srv.URL)
	err := store.Register(context.Background(), session.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Password: "same", Password2: "same",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !store.Authenticated() {
		t.Error("registration should leave the user logged in")
	}
}

func TestInit_RejectedTokenLogsOutSilently(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store, cfg := newStore(t, srv.URL)
	if err := cfg.EnsureDir(); err != nil {
		t.Fatal(err)
	}
	tok := `{"access_token":"stale","refresh_token":"","token_type":"Bearer"}`
	if err := os.WriteFile(cfg.TokenPath(), []byte(tok), 0600); err != nil {
		t.Fatal(err)
	}

	store.Init(context.Background())

	if store.Authenticated() {
		t.Error("store should log out when the backend rejects the token")
	}
	if cfg.HasToken() {
		t.Error("stale token file should be removed")
	}
}

func TestLoad_MissingFileStaysLoggedOut(t *testing.T) {
	store, _ := newStore(t, "http://unused")
	store.Load()
	if store.Authenticated() {
		t.Error("no token file, no session")
	}
}

func TestLogout_RemovesTokenFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/":
			json.NewEncoder(w).Encode(map[string]string{"access": "acc", "refresh": "ref"})
		case "/users/me/":
			json.NewEncoder(w).Encode(map[string]any{"first_name": "Ada"})
		}
	}))
	defer srv.Close()

	store, cfg := newStore(t, srv.URL)
	if err := store.Login(context.Background(), "a", "b"); err != nil {
		t.Fatalf("login: %v", err)
	}

	store.Logout()
	if store.Authenticated() {
		t.Error("store should be logged out")
	}
	if cfg.HasToken() {
		t.Error("token file should be gone")
	}
}

func TestTokenSource_RefreshesExpiredAccess(t *testing.T) {
	refreshes := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/":
			json.NewEncoder(w).Encode(map[string]string{"access": "", "refresh": ""})
		case "/token/refresh/":
			refreshes++
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["refresh"] != "ref-live" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"access": "acc-fresh"})
		}
	}))
	defer srv.Close()

	store, cfg := newStore(t, srv.URL)
	if err := cfg.EnsureDir(); err != nil {
		t.Fatal(err)
	}
	tok := map[string]string{
		"access_token":  expiredJWT(t),
		"refresh_token": "ref-live",
		"token_type":    "Bearer",
	}
	data, _ := json.Marshal(tok)
	if err := os.WriteFile(cfg.TokenPath(), data, 0600); err != nil {
		t.Fatal(err)
	}
	store.Load()

	got, err := store.TokenSource().Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if got.AccessToken != "acc-fresh" {
		t.Errorf("access = %q, want refreshed token", got.AccessToken)
	}
	if refreshes != 1 {
		t.Errorf("refresh calls = %d, want 1", refreshes)
	}

	// The refreshed pair is persisted for the next process.
	data, err = os.ReadFile(cfg.TokenPath())
	if err != nil {
		t.Fatal(err)
	}
	var persisted map[string]any
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatal(err)
	}
	if persisted["access_token"] != "acc-fresh" {
		t.Errorf("persisted access = %v", persisted["access_token"])
	}
}

func TestTokenSource_FailedRefreshReadsAsLoggedOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store, cfg := newStore(t, srv.URL)
	if err := cfg.EnsureDir(); err != nil {
		t.Fatal(err)
	}
	tok := map[string]string{
		"access_token":  expiredJWT(t),
		"refresh_token": "ref-dead",
		"token_type":    "Bearer",
	}
	data, _ := json.Marshal(tok)
	if err := os.WriteFile(cfg.TokenPath(), data, 0600); err != nil {
		t.Fatal(err)
	}
	store.Load()

	_, err := store.TokenSource().Token()
	if !errors.Is(err, session.ErrNotAuthenticated) {
		t.Errorf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestTokenSource_NoSession(t *testing.T) {
	store, _ := newStore(t, "http://unused")
	_, err := store.TokenSource().Token()
	if !errors.Is(err, session.ErrNotAuthenticated) {
		t.Errorf("err = %v, want ErrNotAuthenticated", err)
	}
}
