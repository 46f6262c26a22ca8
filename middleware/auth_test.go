package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"docassist/config"
	"docassist/models"
	"docassist/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"
}

// identityEcho reports the context keys the middleware chain resolved.
func identityEcho(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.GetString(CtxUserID),
		"email":   c.GetString(CtxUserEmail),
		"role":    c.GetString(CtxUserRole),
	})
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func accessToken(t *testing.T, role string) string {
	t.Helper()
	token, err := utils.GenerateToken("user-1", "jo@example.com", role, time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	return token
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/whoami", JWTAuthMiddleware(), identityEcho)

	if rec := get(r, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: expected 401, got %d", rec.Code)
	}
	if rec := get(r, "not-a-jwt"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", rec.Code)
	}

	reset, err := utils.GenerateResetToken("user-1", time.Hour)
	if err != nil {
		t.Fatalf("reset token generation failed: %v", err)
	}
	if rec := get(r, reset); rec.Code != http.StatusUnauthorized {
		t.Fatalf("reset token: expected 401, got %d", rec.Code)
	}

	rec := get(r, accessToken(t, models.RoleUser))
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"user-1", "jo@example.com", models.RoleUser} {
		if !strings.Contains(body, want) {
			t.Fatalf("identity %q missing from context echo %s", want, body)
		}
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/whoami", OptionalAuthMiddleware(), identityEcho)

	rec := get(r, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"user_id":""`) {
		t.Fatalf("anonymous request should carry no identity: %s", rec.Body.String())
	}

	if rec := get(r, "not-a-jwt"); rec.Code != http.StatusOK {
		t.Fatalf("bad token should fall back to anonymous, got %d", rec.Code)
	}

	rec = get(r, accessToken(t, models.RoleUser))
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "user-1") {
		t.Fatalf("identity missing from context echo: %s", rec.Body.String())
	}
}

func TestAdminMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/whoami", JWTAuthMiddleware(), AdminMiddleware(), identityEcho)

	if rec := get(r, accessToken(t, models.RoleUser)); rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin: expected 403, got %d", rec.Code)
	}
	if rec := get(r, accessToken(t, models.RoleAdmin)); rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
