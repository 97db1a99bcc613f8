package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newIdentityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Identity())
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, UserIDFromContext(c))
	})
	router.OPTIONS("/whoami", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestIdentityUserHeader(t *testing.T) {
	router := newIdentityRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-Id", "user-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Body.String() != "user-1" {
		t.Fatalf("expected user-1, got %q", resp.Body.String())
	}
}

func TestIdentityGuestHeader(t *testing.T) {
	router := newIdentityRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Guest-Id", "abc")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Body.String() != "guest:abc" {
		t.Fatalf("expected guest:abc, got %q", resp.Body.String())
	}
}

func TestIdentityUserHeaderWinsOverGuest(t *testing.T) {
	router := newIdentityRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-Id", "user-1")
	req.Header.Set("X-Guest-Id", "abc")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Body.String() != "user-1" {
		t.Fatalf("expected user-1, got %q", resp.Body.String())
	}
}

func TestIdentityMissingHeaders(t *testing.T) {
	router := newIdentityRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestIdentityAllowsOptionsWithoutIdentity(t *testing.T) {
	router := newIdentityRouter()

	req := httptest.NewRequest(http.MethodOptions, "/whoami", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}
