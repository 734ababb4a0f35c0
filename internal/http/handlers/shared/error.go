package shared

import (
	"errors"

	"github.com/gemledger/internal/http/response"
	"github.com/gemledger/internal/i18n"
	"github.com/gemledger/internal/logger"
	"github.com/gemledger/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	RespondErrorWithMsg(c, code, msg, err)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondLocalizedError 错误自带文案键时按参数格式化，否则使用 fallbackKey。
func RespondLocalizedError(c *gin.Context, code int, fallbackKey string, err error) {
	var localized service.LocalizedError
	if errors.As(err, &localized) {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), localized.Key(), localized.Args()...)
		response.Error(c, code, msg)
		return
	}
	RespondError(c, code, fallbackKey, nil)
}

// MappedError 业务错误到接口错误响应的映射。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// RespondMappedError 按规则返回错误，未命中时记录原始错误并返回兜底文案。
func RespondMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondLocalizedError(c, rule.Code, rule.Key, err)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}
