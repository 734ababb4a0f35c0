package public

import "github.com/gemledger/internal/provider"

// Handler 前台公开接口处理器入口
// 说明：目录浏览与询价提交无需登录。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
