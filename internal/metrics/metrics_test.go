package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/stones/:sku", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/stones/:sku", "204"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stones/ABC", nil))
	after := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/stones/:sku", "204"))
	if after-before != 1 {
		t.Fatalf("expected one request counted, got %v", after-before)
	}
}

func TestObserveImportSkipsZeroRows(t *testing.T) {
	before := testutil.ToFloat64(ImportRows.WithLabelValues("skipped"))
	ObserveImport("completed", "add_new_only", 1, 0, 2, 0, 0)
	if got := testutil.ToFloat64(ImportRows.WithLabelValues("skipped")) - before; got != 2 {
		t.Fatalf("expected 2 skipped rows, got %v", got)
	}
	if got := testutil.ToFloat64(ImportOutcomes.WithLabelValues("completed", "add_new_only")); got < 1 {
		t.Fatalf("outcome not counted")
	}
}

func TestHandlerExposesImportMetrics(t *testing.T) {
	ObserveImport("pending", "", 0, 0, 0, 0, 0)
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "gemledger_import_outcomes_total") {
		t.Fatalf("metrics output missing import counter")
	}
}
