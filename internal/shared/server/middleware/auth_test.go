package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"docrepo-backend/internal/shared/auth"
)

const testSecret = "test-secret"

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(testSecret))
	router.OPTIONS("/api/v1/documents", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/documents", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(testSecret))
	router.GET("/api/v1/documents", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthStoresIdentityAndAdminGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(testSecret))
	router.GET("/api/v1/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, "%s:%s", UsernameFromContext(c), RoleFromContext(c))
	})
	admin := router.Group("/api/v1/users")
	admin.Use(RequireAdmin())
	admin.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, err := auth.SignToken(testSecret, "1", "bob", RoleUser)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK || resp.Body.String() != "bob:user" {
		t.Fatalf("expected bob:user, got %d %q", resp.Code, resp.Body.String())
	}

	reqAdmin := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	reqAdmin.Header.Set("Authorization", "Bearer "+token)
	respAdmin := httptest.NewRecorder()
	router.ServeHTTP(respAdmin, reqAdmin)
	if respAdmin.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", respAdmin.Code)
	}
}
