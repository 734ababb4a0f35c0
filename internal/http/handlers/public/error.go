package public

import (
	handlershared "github.com/gemledger/internal/http/handlers/shared"
	"github.com/gemledger/internal/http/response"
	"github.com/gemledger/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []handlershared.MappedError, fallbackCode int, fallbackKey string) {
	handlershared.RespondMappedError(c, err, rules, fallbackCode, fallbackKey)
}

var quoteSubmitErrorRules = []handlershared.MappedError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_unavailable"},
	{Target: service.ErrQuoteInvalid, Code: response.CodeBadRequest, Key: "error.quote_invalid"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrQuoteItemsEmpty, Code: response.CodeBadRequest, Key: "error.quote_items_empty"},
	{Target: service.ErrQuoteItemsTooMany, Code: response.CodeBadRequest, Key: "error.quote_items_too_many"},
	{Target: service.ErrQuoteStoneUnavailable, Code: response.CodeBadRequest, Key: "error.quote_stone_unavailable"},
}
