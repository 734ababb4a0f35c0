package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 41)
	if p.TotalPage != 3 || p.Total != 41 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if got := NewPagination(1, 0, 10); got.TotalPage != 0 {
		t.Fatalf("zero page size should give zero pages: %+v", got)
	}
}

func TestConflictAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "rid-1")

	Conflict(c, "conflict", gin.H{"conflicting_skus": []string{"S1"}})

	var body struct {
		StatusCode int                    `json:"status_code"`
		Data       map[string]interface{} `json:"data"`
		RequestID  string                 `json:"request_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.StatusCode != CodeConflict {
		t.Fatalf("unexpected code: %d", body.StatusCode)
	}
	if body.RequestID != "rid-1" || body.Data["conflicting_skus"] == nil {
		t.Fatalf("unexpected data: %v", body.Data)
	}
}

func TestSuccessOmitsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "rid-2")

	Success(c, []string{"S1"})

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if _, ok := body["request_id"]; ok {
		t.Fatalf("success response should not carry request_id: %v", body)
	}
	if body["msg"] != "success" {
		t.Fatalf("unexpected msg: %v", body["msg"])
	}
}
