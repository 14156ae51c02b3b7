package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRequestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})
	return router
}

func TestRequestIDEchoesIncomingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set("X-Request-Id", "req-123")
	resp := httptest.NewRecorder()
	newRequestIDRouter().ServeHTTP(resp, req)

	if got := resp.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("expected echoed id, got %q", got)
	}
	if resp.Body.String() != "req-123" {
		t.Fatalf("context id mismatch: %q", resp.Body.String())
	}
}

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	resp := httptest.NewRecorder()
	newRequestIDRouter().ServeHTTP(resp, req)

	id := resp.Header().Get("X-Request-Id")
	if len(id) != 32 {
		t.Fatalf("expected 32-char hex id, got %q", id)
	}
	if resp.Body.String() != id {
		t.Fatalf("context id %q does not match header %q", resp.Body.String(), id)
	}
}

func TestRequestIDFromNilContext(t *testing.T) {
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}
