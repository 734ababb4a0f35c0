package public

import (
	"github.com/gemledger/internal/constants"
	handlershared "github.com/gemledger/internal/http/handlers/shared"
	"github.com/gemledger/internal/http/response"
	"github.com/gemledger/internal/i18n"
	"github.com/gemledger/internal/service"

	"github.com/gin-gonic/gin"
)

// QuoteRequestPayload 访客询价请求
type QuoteRequestPayload struct {
	Name           string                              `json:"name" binding:"required"`
	Email          string                              `json:"email" binding:"required"`
	Phone          string                              `json:"phone"`
	Message        string                              `json:"message"`
	SKUs           []string                            `json:"skus" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// CreateQuoteRequest 提交询价
func (h *Handler) CreateQuoteRequest(c *gin.Context) {
	var req QuoteRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneQuoteRequest, req.CaptchaPayload.ToServicePayload()); err != nil {
			respondWithMappedError(c, err, quoteSubmitErrorRules, response.CodeInternal, "error.captcha_unavailable")
			return
		}
	}

	created, err := h.QuoteService.Submit(c.Request.Context(), service.QuoteSubmitInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Message:  req.Message,
		SKUs:     req.SKUs,
		ClientIP: c.ClientIP(),
		Locale:   i18n.ResolveLocale(c),
	})
	if err != nil {
		respondWithMappedError(c, err, quoteSubmitErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, gin.H{
		"request_no":   created.RequestNo,
		"items":        len(created.Items),
		"total_amount": created.TotalAmount,
		"created_at":   created.CreatedAt,
	})
}
