package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gemledger/internal/config"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`{"email":" Test@Example.com "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("email")(c)
	if key != "test@example.com|1.2.3.4" {
		t.Fatalf("key want test@example.com|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Test@Example.com") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestRuleRetryAfter(t *testing.T) {
	rule := RateLimitRule{WindowSeconds: 60, MaxRequests: 5}
	if got := rule.retryAfter(42); got != 42 {
		t.Fatalf("ttl should win, got %d", got)
	}
	if got := rule.retryAfter(-1); got != 60 {
		t.Fatalf("missing ttl should fall back to window, got %d", got)
	}
	if got := (RateLimitRule{}).retryAfter(0); got != 1 {
		t.Fatalf("empty rule should wait one second, got %d", got)
	}
	if (RateLimitRule{WindowSeconds: 60}).active() {
		t.Fatalf("rule without max requests should be inactive")
	}
}

func TestRuleFromConfig(t *testing.T) {
	rule := RuleFromConfig("gl:rate:quote", "error.rate_limited", config.LoginRateLimitConfig{
		WindowSeconds: 60,
		MaxAttempts:   5,
		BlockSeconds:  300,
	})
	if rule.Prefix != "gl:rate:quote" || rule.WindowSeconds != 60 || rule.MaxRequests != 5 || rule.BlockSeconds != 300 {
		t.Fatalf("unexpected rule: %+v", rule)
	}
}

func TestDeriveAdminPermissionModule(t *testing.T) {
	cases := map[string]string{
		"/admin/stones/:id":               "stones",
		"/admin/stones/import/:id/cancel": "import",
		"/admin/import-batches":           "import",
		"/admin/authz/admins/:id/roles":   "authz",
		"/admin/quote-requests":           "quote-requests",
		"/":                               "system",
	}
	for object, want := range cases {
		if got := deriveAdminPermissionModule(object); got != want {
			t.Fatalf("%s want %s got %s", object, want, got)
		}
	}
}
