// Package testutil holds helpers shared by handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"nurture-backend/internal/shared/auth"
	"nurture-backend/internal/shared/server/middleware"
	"nurture-backend/internal/shared/telemetry"
)

// Token signs a short-lived bearer token for userID.
func Token(t testing.TB, userID string) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{
		Email: userID + "@example.com",
		Role:  "parent",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
		},
	}, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// NewRouter builds a test engine with request ids and auth, calling register
// with the /api/v1 group.
func NewRouter(register func(rg *gin.RouterGroup), publicPrefixes ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Auth(publicPrefixes...))
	register(r.Group("/api/v1"))
	return r
}

// Do sends a request with an optional JSON body and bearer token.
func Do(t testing.TB, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			data, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("marshal body: %v", err)
			}
			raw = string(data)
		}
		reader = bytes.NewBufferString(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

// Decode unmarshals the recorder body into dst.
func Decode(t testing.TB, resp *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", resp.Body.String(), err)
	}
}

// CaptureLogs redirects telemetry into a buffer for the test's lifetime.
func CaptureLogs(t testing.TB) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	t.Cleanup(restore)
	return &buf
}

// ErrorEnvelope mirrors the standard error response.
type ErrorEnvelope struct {
	Error struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}
