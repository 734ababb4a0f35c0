package shared

import (
	"github.com/gemledger/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 鉴权中间件写入、处理器读取的上下文键
const (
	ContextKeyAdminID   = "admin_id"
	ContextKeyUsername  = "username"
	ContextKeyIsSuper   = "admin_is_super"
	ContextKeyRequestID = "request_id"
)

// AdminIdentity 当前请求的管理员身份
type AdminIdentity struct {
	ID       uint
	Username string
	IsSuper  bool
}

// SetAdminIdentity 鉴权通过后写入上下文
func SetAdminIdentity(c *gin.Context, identity AdminIdentity) {
	c.Set(ContextKeyAdminID, identity.ID)
	c.Set(ContextKeyUsername, identity.Username)
	c.Set(ContextKeyIsSuper, identity.IsSuper)
}

// CurrentAdmin 读取身份，不写响应
func CurrentAdmin(c *gin.Context) (AdminIdentity, bool) {
	id := c.GetUint(ContextKeyAdminID)
	if id == 0 {
		return AdminIdentity{}, false
	}
	return AdminIdentity{
		ID:       id,
		Username: c.GetString(ContextKeyUsername),
		IsSuper:  c.GetBool(ContextKeyIsSuper),
	}, true
}

// RequireAdminID 缺少身份时直接返回 401
func RequireAdminID(c *gin.Context) (uint, bool) {
	identity, ok := CurrentAdmin(c)
	if !ok {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	return identity.ID, true
}

// RequestID 请求 ID，未设置时为空
func RequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}
