package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gemledger/internal/authz"
	"github.com/gemledger/internal/config"
	"github.com/gemledger/internal/models"
	"github.com/gemledger/internal/repository"
	"github.com/gemledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func setupRouterTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func decodeStatusCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode
}

func TestJWTAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupRouterTestDB(t)
	repo := repository.NewAdminRepository(db)
	admin := &models.Admin{Username: "ops", PasswordHash: "x"}
	if err := repo.Create(admin); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	cfg := &config.Config{JWT: config.JWTConfig{SecretKey: "router-secret", ExpireHours: 1}}
	token, _, err := service.NewAuthService(cfg, repo).GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	r := gin.New()
	r.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, repo))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0, "admin_id": c.GetUint("admin_id")})
	})
	call := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		return decodeStatusCode(t, w)
	}

	if code := call(); code != 0 {
		t.Fatalf("fresh token should pass, got %d", code)
	}
	if err := repo.UpdatePassword(admin.ID, "y"); err != nil {
		t.Fatalf("update password failed: %v", err)
	}
	if code := call(); code != 401 {
		t.Fatalf("token issued before password change should be revoked, got %d", code)
	}
}

func TestAdminRBACMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupRouterTestDB(t)
	authzService, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	if err := authzService.SetAdminRoles(7, []string{authz.RoleSalesConsultant}); err != nil {
		t.Fatalf("set roles failed: %v", err)
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("admin_id", uint(7))
		c.Set(adminIsSuperContextKey, c.GetHeader("X-Super") == "1")
		c.Next()
	})
	r.Use(AdminRBACMiddleware(authzService))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status_code": 0}) }
	r.GET("/api/v1/admin/stones", ok)
	r.POST("/api/v1/admin/stones/import", ok)
	r.PATCH("/api/v1/admin/quote-requests/:id/status", ok)

	cases := []struct {
		method string
		path   string
		super  bool
		want   int
	}{
		{http.MethodGet, "/api/v1/admin/stones", false, 0},
		{http.MethodPatch, "/api/v1/admin/quote-requests/3/status", false, 0},
		{http.MethodPost, "/api/v1/admin/stones/import", false, 403},
		{http.MethodPost, "/api/v1/admin/stones/import", true, 0},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if tc.super {
			req.Header.Set("X-Super", "1")
		}
		r.ServeHTTP(w, req)
		if got := decodeStatusCode(t, w); got != tc.want {
			t.Fatalf("%s %s super=%v want %d got %d", tc.method, tc.path, tc.super, tc.want, got)
		}
	}
}
