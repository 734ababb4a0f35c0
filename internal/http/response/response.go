package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构，HTTP 状态恒为 200，业务结果看 status_code
type Response struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
	RequestID  string      `json:"request_id,omitempty"` // 仅错误响应携带，便于对照日志
}

// PageResponse 分页响应结构
type PageResponse struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// NewPagination 按总数计算页数
func NewPagination(page, pageSize int, total int64) Pagination {
	p := Pagination{Page: page, PageSize: pageSize, Total: total}
	if pageSize > 0 {
		p.TotalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return p
}

func write(c *gin.Context, code int, msg string, data interface{}) {
	resp := Response{StatusCode: code, Msg: msg, Data: data}
	if code != CodeOK {
		resp.RequestID = c.GetString("request_id")
	}
	c.JSON(http.StatusOK, resp)
}

func Success(c *gin.Context, data interface{}) {
	write(c, CodeOK, "success", data)
}

// SuccessWithMsg 导入完成等需要提示文案的场景
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	write(c, CodeOK, msg, data)
}

func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		StatusCode: CodeOK,
		Msg:        "success",
		Data:       data,
		Pagination: pagination,
	})
}

func Error(c *gin.Context, code int, msg string) {
	write(c, code, msg, nil)
}

// ErrorWithData 错误响应附带业务数据，例如待决导入的冲突摘要
func ErrorWithData(c *gin.Context, code int, msg string, data interface{}) {
	write(c, code, msg, data)
}

func NotFound(c *gin.Context, msg string)     { Error(c, CodeNotFound, msg) }
func Unauthorized(c *gin.Context, msg string) { Error(c, CodeUnauthorized, msg) }
func Forbidden(c *gin.Context, msg string)    { Error(c, CodeForbidden, msg) }
func BadRequest(c *gin.Context, msg string)   { Error(c, CodeBadRequest, msg) }

// Conflict 409，data 为待决导入
func Conflict(c *gin.Context, msg string, data interface{}) {
	ErrorWithData(c, CodeConflict, msg, data)
}
