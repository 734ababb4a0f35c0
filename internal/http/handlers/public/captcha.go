package public

import (
	"errors"

	"github.com/gemledger/internal/constants"
	"github.com/gemledger/internal/http/response"
	"github.com/gemledger/internal/service"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha 询价与登录共用的图片挑战，附带各场景是否需要验证码
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	switch {
	case errors.Is(err, service.ErrCaptchaConfigInvalid):
		respondError(c, response.CodeBadRequest, "error.captcha_unavailable", nil)
		return
	case err != nil:
		respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
		return
	}

	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
		"scenes": gin.H{
			constants.CaptchaSceneLogin:        h.CaptchaService.SceneEnabled(constants.CaptchaSceneLogin),
			constants.CaptchaSceneQuoteRequest: h.CaptchaService.SceneEnabled(constants.CaptchaSceneQuoteRequest),
		},
	})
}
