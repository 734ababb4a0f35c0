package repository

// StoneListFilter 石头列表查询条件
type StoneListFilter struct {
	Page      int
	PageSize  int
	Keyword   string   // sku 模糊匹配
	Statuses  []string // 为空表示不限
	Shapes    []string
	Labs      []string
	Colors    []string
	Clarities []string
	Cuts      []string
	MinCarat  *float64
	MaxCarat  *float64
	MinPrice  *float64
	MaxPrice  *float64
	Sort      string
}

// ImportBatchListFilter 导入批次查询条件
type ImportBatchListFilter struct {
	Page     int
	PageSize int
	AdminID  uint
	Outcome  string
}

// QuoteRequestListFilter 询价单查询条件
type QuoteRequestListFilter struct {
	Page     int
	PageSize int
	Status   string
	Email    string
}

// ShapeCountRow 各形状数量
type ShapeCountRow struct {
	Shape string `json:"shape"`
	Count int64  `json:"count"`
}

// StockStatsRow 库存概览
type StockStatsRow struct {
	InStock      int64
	Hidden       int64
	Sold         int64
	InStockValue float64
	InStockCarat float64
}
