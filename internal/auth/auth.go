// package auth manages OAuth credentials for the YouTube Data API.
//
// Client secrets come from a Google Cloud "Desktop app" JSON file.
// Granted tokens are cached on disk so the browser consent flow only
// runs when no usable refresh token exists.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/desertthunder/ytag/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// Authenticator holds the OAuth client configuration and the token cache location.
type Authenticator struct {
	config    *oauth2.Config
	cachePath string
}

// New builds an Authenticator from a client secrets file. The redirect
// URL points at the local callback server; cachePath is where granted
// tokens are stored.
func New(secretsPath, cachePath, redirectURL string) (*Authenticator, error) {
	data, err := shared.VerifyAndReadFile(secretsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMissingCredentials, err)
	}

	config, err := google.ConfigFromJSON(data, youtube.YoutubeScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
	}
	config.RedirectURL = redirectURL

	return &Authenticator{config: config, cachePath: cachePath}, nil
}

// OAuthConfig returns the underlying OAuth client configuration.
func (a *Authenticator) OAuthConfig() *oauth2.Config {
	return a.config
}

// AuthURL returns the consent page URL for the given CSRF state.
// Offline access is requested so the grant includes a refresh token.
func (a *Authenticator) AuthURL(state string) string {
	return a.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token and caches it.
func (a *Authenticator) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if err := a.SaveToken(token); err != nil {
		return nil, err
	}

	return token, nil
}

// CachedToken loads the cached token from disk.
// Returns [shared.ErrAuthRequired] when no cache exists.
func (a *Authenticator) CachedToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no cached token at %s", shared.ErrAuthRequired, a.cachePath)
		}
		return nil, fmt.Errorf("failed to read token cache: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("%w: corrupt token cache: %v", shared.ErrAuthRequired, err)
	}

	return &token, nil
}

// SaveToken writes the token to the cache file with owner-only permissions.
func (a *Authenticator) SaveToken(token *oauth2.Token) error {
	data, err := shared.MarshalJSON(token, true)
	if err != nil {
		return err
	}

	if err := os.WriteFile(a.cachePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}

	return nil
}

// ClearToken removes the cached token. Missing cache files are not an error.
func (a *Authenticator) ClearToken() error {
	if err := os.Remove(a.cachePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token cache: %w", err)
	}
	return nil
}

// TokenSource returns a token source backed by the cached token.
// Refreshed tokens are written back to the cache so the next run
// skips the consent flow.
func (a *Authenticator) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	token, err := a.CachedToken()
	if err != nil {
		return nil, err
	}

	return &persistingTokenSource{
		auth: a,
		src:  a.config.TokenSource(ctx, token),
		last: token.AccessToken,
	}, nil
}

// persistingTokenSource saves tokens back to the cache whenever the
// wrapped source refreshes them.
type persistingTokenSource struct {
	auth *Authenticator
	src  oauth2.TokenSource

	mu   sync.Mutex
	last string
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := p.src.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if token.AccessToken != p.last {
		if err := p.auth.SaveToken(token); err != nil {
			return nil, err
		}
		p.last = token.AccessToken
	}

	return token, nil
}
