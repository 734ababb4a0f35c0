package admin

import (
	handlershared "github.com/gemledger/internal/http/handlers/shared"
	"github.com/gemledger/internal/http/response"
	"github.com/gemledger/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []handlershared.MappedError, fallbackCode int, fallbackKey string) {
	handlershared.RespondMappedError(c, err, rules, fallbackCode, fallbackKey)
}

var captchaErrorRules = []handlershared.MappedError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_unavailable"},
}

var stoneErrorRules = []handlershared.MappedError{
	{Target: service.ErrStoneNotFound, Code: response.CodeNotFound, Key: "error.stone_not_found"},
	{Target: service.ErrStoneSKURequired, Code: response.CodeBadRequest, Key: "error.stone_sku_required"},
	{Target: service.ErrStoneFieldInvalid, Code: response.CodeBadRequest, Key: "error.stone_field_invalid"},
	{Target: service.ErrStoneStatusInvalid, Code: response.CodeBadRequest, Key: "error.status_invalid"},
	{Target: service.ErrStorageDisabled, Code: response.CodeBadRequest, Key: "error.storage_disabled"},
}

var quoteAdminErrorRules = []handlershared.MappedError{
	{Target: service.ErrQuoteNotFound, Code: response.CodeNotFound, Key: "error.quote_not_found"},
	{Target: service.ErrQuoteStatusInvalid, Code: response.CodeBadRequest, Key: "error.quote_status_invalid"},
}
