package i18n

var zhTW = map[string]string{
	"error.bad_request":            "請求參數錯誤",
	"error.unauthorized":           "未登入或登入已失效",
	"error.forbidden":              "沒有權限執行該操作",
	"error.not_found":              "資源不存在",
	"error.internal":               "伺服器內部錯誤",
	"error.save_failed":            "儲存失敗",
	"error.jwt_secret_missing":     "伺服器未設定 JWT 金鑰",
	"error.auth_header_missing":    "缺少 Authorization 標頭",
	"error.auth_header_invalid":    "Authorization 格式錯誤",
	"error.token_invalid":          "登入憑證無效",
	"error.token_revoked":          "登入憑證已失效，請重新登入",
	"error.rate_limit_unavailable": "限流服務暫不可用",
	"error.rate_limited":           "請求過於頻繁，請 %d 秒後再試",
	"error.login_too_many":         "登入嘗試過多，請 %d 秒後再試",
	"error.login_invalid":          "帳號或密碼錯誤",
	"error.captcha_required":       "請輸入驗證碼",
	"error.captcha_invalid":        "驗證碼錯誤",
	"error.captcha_unavailable":    "驗證碼未啟用",
	"error.captcha_generate_failed": "驗證碼產生失敗",
	"error.password_old_invalid":   "原密碼錯誤",
	"error.password_min_length":    "密碼長度至少 %d 位",
	"error.password_require_upper": "密碼需包含大寫字母",
	"error.password_require_lower": "密碼需包含小寫字母",
	"error.password_require_number": "密碼需包含數字",
	"error.admin_update_failed":    "管理員資料更新失敗",
	"error.admin_fetch_failed":     "取得管理員資料失敗",
	"error.role_invalid":           "角色不存在",

	"error.stone_not_found":     "裸石不存在",
	"error.stone_fetch_failed":  "取得裸石資料失敗",
	"error.stone_save_failed":   "裸石儲存失敗",
	"error.stone_delete_failed": "裸石刪除失敗",
	"error.stone_sku_required":  "Stone ID 不可為空",
	"error.stone_field_invalid": "欄位 %s 取值無效",
	"error.status_invalid":      "狀態無效",

	"error.import_busy":               "已有匯入正在進行，請稍後再試",
	"error.import_file_required":      "請選擇要匯入的表格檔案",
	"error.import_file_too_large":     "檔案超過 %d MB 上限",
	"error.import_extension_invalid":  "不支援的檔案類型",
	"error.import_parse_failed":       "表格無法解析",
	"error.import_parse_detail":       "表格無法解析：%s",
	"error.import_mapping_missing":    "未識別到 Stone ID 欄，偵測到的表頭：%s",
	"error.import_conflict":           "%d 個 Stone ID 已存在，請選擇覆蓋或僅新增",
	"error.import_decision_invalid":   "無效的衝突處理方式",
	"error.import_proposal_not_found": "待確認的匯入不存在或已過期",
	"error.import_lookup_failed":      "查詢既有 Stone ID 失敗，未寫入任何資料：%s",
	"error.import_storage_failed":     "寫入庫存失敗：%s",
	"error.import_cancelled":          "匯入已取消，未寫入任何資料",
	"error.import_fetch_failed":       "取得匯入紀錄失敗",

	"error.storage_disabled": "物件儲存未啟用",
	"error.presign_failed":   "產生上傳網址失敗",

	"error.quote_invalid":          "詢價資訊不完整",
	"error.quote_items_empty":      "請至少選擇一顆裸石",
	"error.quote_items_too_many":   "單次最多詢價 %d 顆裸石",
	"error.quote_stone_unavailable": "裸石 %s 目前不可詢價",
	"error.quote_not_found":        "詢價單不存在",
	"error.quote_status_invalid":   "詢價單狀態無效",
	"error.quote_fetch_failed":     "取得詢價單失敗",
	"error.email_invalid":          "信箱格式不正確",

	"import.completed": "匯入完成：%s",

	"email.quote.subject":     "新的詢價單 %s",
	"email.quote.body":        "客戶 %s（%s）提交了詢價單 %s，共 %d 顆裸石，合計 %s。\n\n%s\n\n留言：%s",
	"email.quote.item":        "%s  %s  %.2fct  %s/%s  %s",
	"email.quote.ack_subject": "我們已收到您的詢價 %s",
	"email.quote.ack_body":    "您好 %s，\n\n我們已收到您的詢價單 %s，共 %d 顆裸石，顧問會盡快與您聯繫。",
}
