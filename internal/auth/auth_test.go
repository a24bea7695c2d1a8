package auth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/ytag/internal/shared"
	"golang.org/x/oauth2"
)

const fakeSecrets = `{
	"installed": {
		"client_id": "client-id.apps.googleusercontent.com",
		"client_secret": "secret",
		"auth_uri": "https://accounts.google.com/o/oauth2/auth",
		"token_uri": "https://oauth2.googleapis.com/token",
		"redirect_uris": ["http://localhost"]
	}
}`

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	dir := t.TempDir()

	secretsPath := filepath.Join(dir, "client_secrets.json")
	if err := os.WriteFile(secretsPath, []byte(fakeSecrets), 0600); err != nil {
		t.Fatalf("failed to write secrets: %v", err)
	}

	a, err := New(secretsPath, filepath.Join(dir, "token.json"), "http://127.0.0.1:3000/callback")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return a
}

func TestNew(t *testing.T) {
	a := newTestAuthenticator(t)

	config := a.OAuthConfig()
	if config.ClientID != "client-id.apps.googleusercontent.com" {
		t.Errorf("unexpected client ID: %s", config.ClientID)
	}
	if config.RedirectURL != "http://127.0.0.1:3000/callback" {
		t.Errorf("unexpected redirect URL: %s", config.RedirectURL)
	}
	if len(config.Scopes) != 1 || !strings.Contains(config.Scopes[0], "youtube") {
		t.Errorf("unexpected scopes: %v", config.Scopes)
	}
}

func TestNewMissingSecrets(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.json"), "token.json", "")
	if !errors.Is(err, shared.ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestNewInvalidSecrets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client_secrets.json")
	if err := os.WriteFile(path, []byte(`{"web_thing": true}`), 0600); err != nil {
		t.Fatalf("failed to write secrets: %v", err)
	}

	_, err := New(path, "token.json", "")
	if !errors.Is(err, shared.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthURL(t *testing.T) {
	a := newTestAuthenticator(t)

	url := a.AuthURL("csrf-state")
	if !strings.Contains(url, "state=csrf-state") {
		t.Errorf("expected state parameter in URL: %s", url)
	}
	if !strings.Contains(url, "access_type=offline") {
		t.Errorf("expected offline access in URL: %s", url)
	}
}

func TestTokenCacheRoundTrip(t *testing.T) {
	a := newTestAuthenticator(t)

	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC(),
	}

	if err := a.SaveToken(token); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}

	loaded, err := a.CachedToken()
	if err != nil {
		t.Fatalf("CachedToken failed: %v", err)
	}

	if loaded.AccessToken != "access" || loaded.RefreshToken != "refresh" {
		t.Errorf("unexpected token: %+v", loaded)
	}

	info, err := os.Stat(a.cachePath)
	if err != nil {
		t.Fatalf("failed to stat cache: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestCachedTokenMissing(t *testing.T) {
	a := newTestAuthenticator(t)

	if _, err := a.CachedToken(); !errors.Is(err, shared.ErrAuthRequired) {
		t.Errorf("expected ErrAuthRequired, got %v", err)
	}
}

func TestCachedTokenCorrupt(t *testing.T) {
	a := newTestAuthenticator(t)

	if err := os.WriteFile(a.cachePath, []byte("not json"), 0600); err != nil {
		t.Fatalf("failed to write cache: %v", err)
	}

	if _, err := a.CachedToken(); !errors.Is(err, shared.ErrAuthRequired) {
		t.Errorf("expected ErrAuthRequired, got %v", err)
	}
}

func TestClearToken(t *testing.T) {
	a := newTestAuthenticator(t)

	if err := a.SaveToken(&oauth2.Token{AccessToken: "x"}); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	if err := a.ClearToken(); err != nil {
		t.Fatalf("ClearToken failed: %v", err)
	}
	if _, err := a.CachedToken(); !errors.Is(err, shared.ErrAuthRequired) {
		t.Errorf("expected ErrAuthRequired after clear, got %v", err)
	}

	// Clearing again is not an error
	if err := a.ClearToken(); err != nil {
		t.Errorf("ClearToken on missing cache failed: %v", err)
	}
}

func TestTokenSourceRequiresCache(t *testing.T) {
	a := newTestAuthenticator(t)

	if _, err := a.TokenSource(t.Context()); !errors.Is(err, shared.ErrAuthRequired) {
		t.Errorf("expected ErrAuthRequired, got %v", err)
	}
}

func TestTokenSourcePersistsRefresh(t *testing.T) {
	a := newTestAuthenticator(t)

	if err := a.SaveToken(&oauth2.Token{AccessToken: "old"}); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}

	fresh := &oauth2.Token{AccessToken: "new", Expiry: time.Now().Add(time.Hour)}
	src := &persistingTokenSource{auth: a, src: oauth2.StaticTokenSource(fresh), last: "old"}

	token, err := src.Token()
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if token.AccessToken != "new" {
		t.Errorf("unexpected token: %+v", token)
	}

	cached, err := a.CachedToken()
	if err != nil {
		t.Fatalf("CachedToken failed: %v", err)
	}
	if cached.AccessToken != "new" {
		t.Errorf("expected refreshed token to be cached, got %+v", cached)
	}
}
