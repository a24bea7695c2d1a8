package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/ytag/internal/shared"
	"golang.org/x/oauth2"
)

type fakeExchanger struct {
	token *oauth2.Token
	err   error
	codes []string
}

func (f *fakeExchanger) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	f.codes = append(f.codes, code)
	if f.err != nil {
		return nil, f.err
	}
	return f.token, nil
}

func callbackRequest(query string) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/callback?"+query, nil)
}

func TestOAuthHandlerSuccess(t *testing.T) {
	exchanger := &fakeExchanger{token: &oauth2.Token{AccessToken: "granted"}}
	handler := NewOAuthHandler(exchanger, "state-123")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, callbackRequest("state=state-123&code=auth-code"))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if len(exchanger.codes) != 1 || exchanger.codes[0] != "auth-code" {
		t.Errorf("unexpected exchanged codes: %v", exchanger.codes)
	}

	result := <-handler.Result()
	if result.Error() != nil {
		t.Fatalf("unexpected error: %v", result.Error())
	}
	if result.Token.AccessToken != "granted" {
		t.Errorf("unexpected token: %+v", result.Token)
	}
}

func TestOAuthHandlerInvalidState(t *testing.T) {
	handler := NewOAuthHandler(&fakeExchanger{}, "expected")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, callbackRequest("state=forged&code=auth-code"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	result := <-handler.Result()
	if result.Error() == nil {
		t.Error("expected error for invalid state")
	}
}

func TestOAuthHandlerConsentDenied(t *testing.T) {
	handler := NewOAuthHandler(&fakeExchanger{}, "state-123")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, callbackRequest("state=state-123&error=access_denied&error_description=User+denied"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	result := <-handler.Result()
	if result.Error() == nil || !strings.Contains(result.Error().Error(), "access_denied") {
		t.Errorf("expected access_denied in error, got %v", result.Error())
	}
}

func TestOAuthHandlerExchangeFailure(t *testing.T) {
	exchanger := &fakeExchanger{err: fmt.Errorf("exchange: %w", shared.ErrAuthFailed)}
	handler := NewOAuthHandler(exchanger, "state-123")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, callbackRequest("state=state-123&code=bad-code"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}

	result := <-handler.Result()
	if result.Error() == nil {
		t.Error("expected error for failed exchange")
	}
}

func TestOAuthHandlerDuplicateCallback(t *testing.T) {
	exchanger := &fakeExchanger{token: &oauth2.Token{AccessToken: "granted"}}
	handler := NewOAuthHandler(exchanger, "state-123")

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, callbackRequest("state=state-123&code=auth-code"))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, callbackRequest("state=state-123&code=auth-code"))

	if second.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate callback, got %d", second.Code)
	}
	if len(exchanger.codes) != 1 {
		t.Errorf("expected exactly one exchange, got %d", len(exchanger.codes))
	}
}

func TestBasicRouterMethodFiltering(t *testing.T) {
	router := NewBasicRouter()
	router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestBasicRouterWithOAuthHandler(t *testing.T) {
	exchanger := &fakeExchanger{token: &oauth2.Token{AccessToken: "granted"}}
	handler := NewOAuthHandler(exchanger, "state-123")

	var buf bytes.Buffer
	router := NewBasicRouter()
	router.Use(Logging(shared.NewLogger(&buf)))
	router.Handler(handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, callbackRequest("state=state-123&code=auth-code"))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if result := <-handler.Result(); result.Error() != nil {
		t.Errorf("unexpected error: %v", result.Error())
	}
}
