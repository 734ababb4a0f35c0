package response

const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409 // 导入存在冲突或导入进行中
	CodeUnprocessable   = 422 // 表格无法解析或表头无法识别
	CodeTooManyRequests = 429
	CodeInternal        = 500
)
