package constants

import "strings"

// 石头状态常量
const (
	StoneStatusInStock = "In Stock"
	StoneStatusHidden  = "Hidden"
	StoneStatusSold    = "Sold"
)

// 石头字段默认值
const (
	DefaultStoneLab     = "GLI"
	DefaultStoneShape   = "ROUND"
	DefaultStoneColor   = "F"
	DefaultStoneClarity = "VS2"
	DefaultStoneCut     = "EX"
)

// 目录筛选可选值
var (
	StoneShapes    = []string{"ROUND", "PEAR", "OVAL", "EMERALD", "RADIANT", "PRINCESS", "MARQUISE", "CUSHION", "HEART", "ASSCHER"}
	StoneColors    = []string{"D", "E", "F", "G", "H", "I", "J", "K", "PINK", "BLUE", "YELLOW"}
	StoneClarities = []string{"FL", "IF", "VVS1", "VVS2", "VS1", "VS2", "SI1", "SI2", "I1"}
	StoneLabs      = []string{"GIA", "IGI", "GLI", "HRD"}
	StoneCuts      = []string{"EX", "VG", "G"}
)

// 目录排序方式
const (
	CatalogSortPriceLow  = "price-low"
	CatalogSortPriceHigh = "price-high"
	CatalogSortCaratLow  = "carat-low"
	CatalogSortCaratHigh = "carat-high"
	CatalogSortPriority  = "priority"
)

// 导入冲突处理方式
const (
	ImportDecisionOverwrite  = "overwrite"
	ImportDecisionAddNewOnly = "add_new_only"
	ImportDecisionCancel     = "cancel"
)

// 导入来源
const (
	ImportSourceUpload = "upload"
	ImportSourceRows   = "rows"
	ImportSourceCLI    = "cli"
)

// 导入批次结果
const (
	ImportOutcomeCompleted = "completed"
	ImportOutcomeAbandoned = "abandoned"
	ImportOutcomeFailed    = "failed"
)

// 询价单状态
const (
	QuoteStatusNew       = "new"
	QuoteStatusContacted = "contacted"
	QuoteStatusClosed    = "closed"
)

// 验证码场景
const (
	CaptchaSceneLogin        = "login"
	CaptchaSceneQuoteRequest = "quote_request"
)

// 异步队列
const (
	QueueDefault = "default"

	TaskQuoteRequestNotify   = "quote:notify"
	TaskImportProposalExpire = "import:expire"
)

// 服务运行模式
const (
	ServerModeDebug   = "debug"
	ServerModeRelease = "release"
)

// ContainsFold 判断取值是否在列表内（忽略大小写）
func ContainsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
