package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gemledger/internal/config"
	"github.com/gemledger/internal/constants"
	"github.com/gemledger/internal/models"
	"github.com/gemledger/internal/provider"
	"github.com/gemledger/internal/repository"
	"github.com/gemledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type apiResponse struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupPublicHandlerTest(t *testing.T) (*gin.Engine, *repository.GormQuoteRequestRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:public_handler_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	stoneRepo := repository.NewStoneRepository(db)
	quoteRepo := repository.NewQuoteRequestRepository(db)
	if err := stoneRepo.InsertBatch([]models.Stone{
		{SKU: "P1", Shape: "ROUND", Color: "D", Carat: 1.01, TotalAmount: models.NewMoneyFromFloat(5200), Status: constants.StoneStatusInStock, Priority: 9},
		{SKU: "P2", Shape: "OVAL", Color: "F", Carat: 0.7, TotalAmount: models.NewMoneyFromFloat(1800), Status: constants.StoneStatusInStock},
		{SKU: "P3", Shape: "ROUND", Color: "G", Carat: 2.3, TotalAmount: models.NewMoneyFromFloat(12000), Status: constants.StoneStatusSold},
		{SKU: "PH", Shape: "PEAR", Carat: 1.5, TotalAmount: models.NewMoneyFromFloat(900), Status: constants.StoneStatusHidden},
	}); err != nil {
		t.Fatalf("seed stones failed: %v", err)
	}

	h := New(&provider.Container{
		Config:         &config.Config{},
		StoneRepo:      stoneRepo,
		CaptchaService: service.NewCaptchaService(config.CaptchaConfig{}),
		CatalogService: service.NewCatalogService(stoneRepo),
		QuoteService:   service.NewQuoteService(config.QuoteConfig{MaxItems: 2}, quoteRepo, stoneRepo, nil, service.NewEmailService(&config.EmailConfig{})),
	})

	r := gin.New()
	r.GET("/stones", h.GetStones)
	r.GET("/stones/summary", h.GetStoneSummary)
	r.GET("/stones/:sku", h.GetStoneBySKU)
	r.GET("/filters", h.GetFilters)
	r.POST("/quote-requests", h.CreateQuoteRequest)
	return r, quoteRepo
}

func serve(t *testing.T, r *gin.Engine, method, path string, body []byte) apiResponse {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

func TestGetStonesHidesHiddenAndPriority(t *testing.T) {
	r, _ := setupPublicHandlerTest(t)
	resp := serve(t, r, http.MethodGet, "/stones", nil)
	if resp.StatusCode != 0 {
		t.Fatalf("list failed: %d %s", resp.StatusCode, resp.Msg)
	}
	if bytes.Contains(resp.Data, []byte("priority")) {
		t.Fatalf("public view should not expose priority: %s", string(resp.Data))
	}
	var items []PublicStoneView
	if err := json.Unmarshal(resp.Data, &items); err != nil {
		t.Fatalf("decode items failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("want 3 visible stones got %d", len(items))
	}
	// 默认按价格升序
	if items[0].SKU != "P2" || items[2].SKU != "P3" {
		t.Fatalf("unexpected order: %s %s %s", items[0].SKU, items[1].SKU, items[2].SKU)
	}
}

func TestGetStonesFilters(t *testing.T) {
	r, _ := setupPublicHandlerTest(t)
	resp := serve(t, r, http.MethodGet, "/stones?shape=round&min_carat=1.5", nil)
	var items []PublicStoneView
	if err := json.Unmarshal(resp.Data, &items); err != nil {
		t.Fatalf("decode items failed: %v", err)
	}
	if len(items) != 1 || items[0].SKU != "P3" {
		t.Fatalf("filter should keep only P3, got %+v", items)
	}
}

func TestGetStoneBySKU(t *testing.T) {
	r, _ := setupPublicHandlerTest(t)
	resp := serve(t, r, http.MethodGet, "/stones/p1", nil)
	if resp.StatusCode != 0 || !bytes.Contains(resp.Data, []byte(`"total_amount":"5200.00"`)) {
		t.Fatalf("detail failed: %d %s", resp.StatusCode, string(resp.Data))
	}
	if hidden := serve(t, r, http.MethodGet, "/stones/PH", nil); hidden.StatusCode != 404 {
		t.Fatalf("hidden stone should be 404, got %d", hidden.StatusCode)
	}
	if missing := serve(t, r, http.MethodGet, "/stones/NOPE", nil); missing.StatusCode != 404 {
		t.Fatalf("unknown stone should be 404, got %d", missing.StatusCode)
	}
}

func TestGetStoneSummaryWithoutRedis(t *testing.T) {
	r, _ := setupPublicHandlerTest(t)
	resp := serve(t, r, http.MethodGet, "/stones/summary", nil)
	if resp.StatusCode != 0 {
		t.Fatalf("summary failed: %d %s", resp.StatusCode, resp.Msg)
	}
	if !strings.Contains(string(resp.Data), "ROUND") || strings.Contains(string(resp.Data), "PEAR") {
		t.Fatalf("summary should count visible shapes only: %s", string(resp.Data))
	}
}

func TestCreateQuoteRequest(t *testing.T) {
	r, quotes := setupPublicHandlerTest(t)
	body, _ := json.Marshal(map[string]interface{}{
		"name":  "Ada",
		"email": "ada@example.com",
		"skus":  []string{"p1", "P3"},
	})
	resp := serve(t, r, http.MethodPost, "/quote-requests", body)
	if resp.StatusCode != 0 {
		t.Fatalf("submit failed: %d %s", resp.StatusCode, resp.Msg)
	}
	var data struct {
		RequestNo   string `json:"request_no"`
		Items       int    `json:"items"`
		TotalAmount string `json:"total_amount"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode data failed: %v", err)
	}
	if data.RequestNo == "" || data.Items != 2 || data.TotalAmount != "17200.00" {
		t.Fatalf("unexpected data: %+v", data)
	}
	list, total, err := quotes.List(repository.QuoteRequestListFilter{Page: 1, PageSize: 10})
	if err != nil || total != 1 || list[0].Email != "ada@example.com" {
		t.Fatalf("request should be stored: %+v %d %v", list, total, err)
	}
}

func TestCreateQuoteRequestRejections(t *testing.T) {
	r, _ := setupPublicHandlerTest(t)
	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"hidden_stone", map[string]interface{}{"name": "a", "email": "a@b.com", "skus": []string{"PH"}}},
		{"too_many", map[string]interface{}{"name": "a", "email": "a@b.com", "skus": []string{"P1", "P2", "P3"}}},
		{"bad_email", map[string]interface{}{"name": "a", "email": "nope", "skus": []string{"P1"}}},
		{"missing_skus", map[string]interface{}{"name": "a", "email": "a@b.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.body)
			resp := serve(t, r, http.MethodPost, "/quote-requests", body)
			if resp.StatusCode != 400 {
				t.Fatalf("want 400 got %d (%s)", resp.StatusCode, resp.Msg)
			}
		})
	}
}
