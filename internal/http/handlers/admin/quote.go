package admin

import (
	"strings"

	handlershared "github.com/gemledger/internal/http/handlers/shared"
	"github.com/gemledger/internal/http/response"
	"github.com/gemledger/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListQuoteRequests 询价单列表
func (h *Handler) ListQuoteRequests(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	items, total, err := h.QuoteService.List(repository.QuoteRequestListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.ToLower(strings.TrimSpace(c.Query("status"))),
		Email:    strings.TrimSpace(c.Query("email")),
	})
	if err != nil {
		respondWithMappedError(c, err, quoteAdminErrorRules, response.CodeInternal, "error.quote_fetch_failed")
		return
	}
	response.SuccessWithPage(c, items, response.NewPagination(page, pageSize, total))
}

// GetQuoteRequest 询价单详情
func (h *Handler) GetQuoteRequest(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	req, err := h.QuoteService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, quoteAdminErrorRules, response.CodeInternal, "error.quote_fetch_failed")
		return
	}
	response.Success(c, req)
}

type quoteStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// UpdateQuoteRequestStatus 更新跟进状态
func (h *Handler) UpdateQuoteRequestStatus(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req quoteStatusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	updated, err := h.QuoteService.UpdateStatus(id, req.Status)
	if err != nil {
		respondWithMappedError(c, err, quoteAdminErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	requestLog(c).Infow("admin_quote_status_updated", "quote_request_id", id, "status", updated.Status)
	response.Success(c, updated)
}
