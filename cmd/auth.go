package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/ytag/internal/auth"
	"github.com/desertthunder/ytag/internal/server"
	"github.com/desertthunder/ytag/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthLogin performs the OAuth2 authorization code flow for YouTube.
//
// Starts a local HTTP server, opens the browser for user consent, and
// exchanges the auth code for tokens which are cached on disk.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	authenticator, err := r.authenticator()
	if err != nil {
		return err
	}

	if _, err := r.doOAuth(authenticator); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Token cached at %s\n\n", r.config.Credentials.TokenCache)
	r.writePlain("You can now use: ytag analyze\n")

	return nil
}

// AuthStatus reports whether a usable cached token exists.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	authenticator, err := r.authenticator()
	if err != nil {
		return err
	}

	status := struct {
		Authenticated bool      `json:"authenticated"`
		TokenCache    string    `json:"token_cache"`
		Expiry        time.Time `json:"expiry,omitzero"`
		HasRefresh    bool      `json:"has_refresh_token"`
	}{TokenCache: r.config.Credentials.TokenCache}

	token, err := authenticator.CachedToken()
	switch {
	case errors.Is(err, shared.ErrAuthRequired):
		// Not logged in
	case err != nil:
		return err
	default:
		status.Authenticated = true
		status.Expiry = token.Expiry
		status.HasRefresh = token.RefreshToken != ""
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, true)
	}

	if !status.Authenticated {
		r.writePlain("✗ Not authenticated. Run 'ytag auth login'.\n")
		return nil
	}

	r.writePlain("✓ Authenticated (token cached at %s)\n", status.TokenCache)
	if !status.Expiry.IsZero() {
		r.writePlain("  Access token expires: %s\n", status.Expiry.Format(time.RFC1123))
	}
	if status.HasRefresh {
		r.writePlain("  Refresh token present; expired tokens renew automatically\n")
	}

	return nil
}

// AuthLogout deletes the cached token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	authenticator, err := r.authenticator()
	if err != nil {
		return err
	}

	if err := authenticator.ClearToken(); err != nil {
		return err
	}

	r.writePlain("✓ Cached token removed\n")
	return nil
}

// doOAuth runs the browser consent flow against a local callback server.
func (r *Runner) doOAuth(authenticator *auth.Authenticator) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := authenticator.AuthURL(state)
	oauthHandler := server.NewOAuthHandler(authenticator, state)
	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(oauthHandler)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for YouTube authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}
