package i18n

var zhCN = map[string]string{
	"error.bad_request":            "请求参数错误",
	"error.unauthorized":           "未登录或登录已失效",
	"error.forbidden":              "没有权限执行该操作",
	"error.not_found":              "资源不存在",
	"error.internal":               "服务器内部错误",
	"error.save_failed":            "保存失败",
	"error.jwt_secret_missing":     "服务端未配置 JWT 密钥",
	"error.auth_header_missing":    "缺少 Authorization 头",
	"error.auth_header_invalid":    "Authorization 格式错误",
	"error.token_invalid":          "登录凭证无效",
	"error.token_revoked":          "登录凭证已失效，请重新登录",
	"error.rate_limit_unavailable": "限流服务暂不可用",
	"error.rate_limited":           "请求过于频繁，请 %d 秒后再试",
	"error.login_too_many":         "登录尝试过多，请 %d 秒后再试",
	"error.login_invalid":          "用户名或密码错误",
	"error.captcha_required":       "请输入验证码",
	"error.captcha_invalid":        "验证码错误",
	"error.captcha_unavailable":    "验证码未启用",
	"error.captcha_generate_failed": "验证码生成失败",
	"error.password_old_invalid":   "原密码错误",
	"error.password_min_length":    "密码长度至少 %d 位",
	"error.password_require_upper": "密码需包含大写字母",
	"error.password_require_lower": "密码需包含小写字母",
	"error.password_require_number": "密码需包含数字",
	"error.admin_update_failed":    "管理员信息更新失败",
	"error.admin_fetch_failed":     "获取管理员信息失败",
	"error.role_invalid":           "角色不存在",

	"error.stone_not_found":     "石头不存在",
	"error.stone_fetch_failed":  "获取石头信息失败",
	"error.stone_save_failed":   "石头保存失败",
	"error.stone_delete_failed": "石头删除失败",
	"error.stone_sku_required":  "Stone ID 不能为空",
	"error.stone_field_invalid": "字段 %s 取值无效",
	"error.status_invalid":      "状态无效",

	"error.import_busy":               "已有导入正在进行，请稍后再试",
	"error.import_file_required":      "请选择要导入的表格文件",
	"error.import_file_too_large":     "文件超过 %d MB 上限",
	"error.import_extension_invalid":  "不支持的文件类型",
	"error.import_parse_failed":       "表格无法解析",
	"error.import_parse_detail":       "表格无法解析：%s",
	"error.import_mapping_missing":    "未识别到 Stone ID 列，检测到的表头：%s",
	"error.import_conflict":           "%d 个 Stone ID 已存在，请选择覆盖或仅新增",
	"error.import_decision_invalid":   "无效的冲突处理方式",
	"error.import_proposal_not_found": "待确认的导入不存在或已过期",
	"error.import_lookup_failed":      "查询已有 Stone ID 失败，未写入任何数据：%s",
	"error.import_storage_failed":     "写入库存失败：%s",
	"error.import_cancelled":          "导入已取消，未写入任何数据",
	"error.import_fetch_failed":       "获取导入记录失败",

	"error.storage_disabled": "对象存储未启用",
	"error.presign_failed":   "生成上传地址失败",

	"error.quote_invalid":          "询价信息不完整",
	"error.quote_items_empty":      "请至少选择一颗石头",
	"error.quote_items_too_many":   "单次最多询价 %d 颗石头",
	"error.quote_stone_unavailable": "石头 %s 当前不可询价",
	"error.quote_not_found":        "询价单不存在",
	"error.quote_status_invalid":   "询价单状态无效",
	"error.quote_fetch_failed":     "获取询价单失败",
	"error.email_invalid":          "邮箱格式不正确",

	"import.completed": "导入完成：%s",

	"email.quote.subject":     "新的询价单 %s",
	"email.quote.body":        "客户 %s（%s）提交了询价单 %s，共 %d 颗石头，合计 %s。\n\n%s\n\n留言：%s",
	"email.quote.item":        "%s  %s  %.2fct  %s/%s  %s",
	"email.quote.ack_subject": "我们已收到您的询价 %s",
	"email.quote.ack_body":    "您好 %s，\n\n我们已收到您的询价单 %s，共 %d 颗石头，顾问会尽快与您联系。",
}
