package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	sharedauth "nurture-backend/internal/shared/auth"
	"nurture-backend/internal/shared/testutil"
	"nurture-backend/internal/users"
)

func newGoogleFixture(t *testing.T, verified bool) (*GoogleService, *gin.Engine, *users.Service) {
	t.Helper()
	testutil.CaptureLogs(t)

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/token":
			_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "at", "token_type": "Bearer", "expires_in": 3600})
		case "/userinfo":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":             "g-123",
				"email":          "parent@example.com",
				"verified_email": verified,
				"name":           "Gia Parent",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(provider.Close)

	userSvc := users.NewService(users.NewMemoryRepo(), nil, time.Hour)
	svc := NewGoogleService("client", "secret", "http://localhost/callback", "http://ui.local/after-login", userSvc)
	svc.oauthConfig.Endpoint = oauth2.Endpoint{AuthURL: provider.URL + "/auth", TokenURL: provider.URL + "/token"}
	svc.userInfoURL = provider.URL + "/userinfo"

	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc.RegisterRoutes(r.Group("/api/v1"))
	return svc, r, userSvc
}

func TestGoogleStartRedirectsWithState(t *testing.T) {
	_, router, _ := newGoogleFixture(t, true)
	resp := testutil.Do(t, router, http.MethodGet, "/api/v1/auth/google/start", "", nil)
	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.Code)
	}
	loc, err := url.Parse(resp.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if loc.Query().Get("state") == "" {
		t.Fatalf("expected state in %s", loc)
	}
}

func TestGoogleCallbackUpsertsParentProfile(t *testing.T) {
	svc, router, userSvc := newGoogleFixture(t, true)
	svc.stateStore.put("state-1", time.Now().Add(time.Minute))

	resp := testutil.Do(t, router, http.MethodGet, "/api/v1/auth/google/callback?state=state-1&code=abc", "", nil)
	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", resp.Code, resp.Body.String())
	}
	loc, err := url.Parse(resp.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if loc.Host != "ui.local" {
		t.Fatalf("unexpected redirect %s", loc)
	}
	claims, err := sharedauth.VerifyJWT(loc.Query().Get("token"))
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	profile, err := userSvc.GetByID(context.Background(), claims.Subject)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if profile.Email != "parent@example.com" || profile.Role != users.RoleParent {
		t.Fatalf("unexpected profile %+v", profile)
	}

	replay := testutil.Do(t, router, http.MethodGet, "/api/v1/auth/google/callback?state=state-1&code=abc", "", nil)
	if replay.Code != http.StatusBadRequest {
		t.Fatalf("expected consumed state to be rejected, got %d", replay.Code)
	}
}

func TestGoogleCallbackRejectsUnverifiedEmail(t *testing.T) {
	svc, router, _ := newGoogleFixture(t, false)
	svc.stateStore.put("state-2", time.Now().Add(time.Minute))
	resp := testutil.Do(t, router, http.MethodGet, "/api/v1/auth/google/callback?state=state-2&code=abc", "", nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestGoogleStartNotConfigured(t *testing.T) {
	testutil.CaptureLogs(t)
	svc := NewGoogleService("", "", "", "", nil)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc.RegisterRoutes(r.Group("/api/v1"))
	resp := testutil.Do(t, r, http.MethodGet, "/api/v1/auth/google/start", "", nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestStateStoreExpiry(t *testing.T) {
	store := newStateStore()
	store.put("old", time.Now().Add(-time.Second))
	if store.consume("old") {
		t.Fatalf("expired state must not be accepted")
	}
	store.put("a", time.Now().Add(-time.Second))
	store.put("b", time.Now().Add(time.Minute))
	if _, ok := store.items["a"]; ok {
		t.Fatalf("expected expired entry to be pruned")
	}
	if !store.consume("b") || store.consume("b") {
		t.Fatalf("state must be single use")
	}
}

func TestAppendToken(t *testing.T) {
	got, err := appendToken("http://ui.local/cb?x=1", "tok")
	if err != nil {
		t.Fatalf("appendToken: %v", err)
	}
	if got != "http://ui.local/cb?token=tok&x=1" {
		t.Fatalf("unexpected url %q", got)
	}
	if _, err := appendToken("", "tok"); err == nil {
		t.Fatalf("expected error for empty redirect")
	}
}
