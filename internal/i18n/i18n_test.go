package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResolveLocaleOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		url    string
		header map[string]string
		want   string
	}{
		{name: "default", url: "/", want: LocaleZH},
		{name: "query", url: "/?lang=en", header: map[string]string{localeHeader: "zh-TW"}, want: LocaleEN},
		{name: "header", url: "/", header: map[string]string{localeHeader: "zh_hk"}, want: LocaleTW},
		{name: "accept", url: "/", header: map[string]string{"Accept-Language": "fr-FR;q=0.9, en-GB;q=0.8"}, want: LocaleEN},
		{name: "unknown", url: "/?lang=fr", want: LocaleZH},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, tc.url, nil)
		for k, v := range tc.header {
			c.Request.Header.Set(k, v)
		}
		if got := ResolveLocale(c); got != tc.want {
			t.Fatalf("%s: want %s got %s", tc.name, tc.want, got)
		}
	}
}

func TestTranslateFallback(t *testing.T) {
	if got := T(LocaleEN, "error.import_busy"); got != "An import is already running" {
		t.Fatalf("unexpected en message: %s", got)
	}
	if got := T("fr", "error.import_busy"); got != zhCN["error.import_busy"] {
		t.Fatalf("unknown locale should fall back to zh-CN: %s", got)
	}
	if got := T(LocaleEN, "missing.key"); got != "missing.key" {
		t.Fatalf("missing key should echo key: %s", got)
	}
	if got := Sprintf(LocaleEN, "error.import_conflict", 2); got != "2 Stone IDs already exist, choose overwrite or add new only" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}

func TestCatalogsShareKeys(t *testing.T) {
	for key := range zhCN {
		if _, ok := zhTW[key]; !ok {
			t.Fatalf("zh-TW missing %s", key)
		}
		if _, ok := enUS[key]; !ok {
			t.Fatalf("en-US missing %s", key)
		}
	}
	if len(zhCN) != len(zhTW) || len(zhCN) != len(enUS) {
		t.Fatalf("catalog sizes differ: %d %d %d", len(zhCN), len(zhTW), len(enUS))
	}
}
