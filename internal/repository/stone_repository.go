package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/gemledger/internal/constants"
	"github.com/gemledger/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	skuLookupChunkSize   = 500
	defaultInsertChunkSz = 200
)

// upsertColumns 导入覆盖时更新的列，priority 保持人工设定值
var upsertColumns = []string{
	"lab", "shape", "color", "clarity", "cut",
	"carat", "length", "width", "height",
	"total_amount", "image_url", "status", "updated_at",
}

// StoneRepository 石头库存数据访问接口
type StoneRepository interface {
	ExistingSKUs(skus []string) ([]string, error)
	InsertBatch(stones []models.Stone) error
	UpsertBatch(stones []models.Stone) error
	UpsertOne(stone *models.Stone) error
	GetByID(id uint) (*models.Stone, error)
	GetBySKU(sku string) (*models.Stone, error)
	ListBySKUs(skus []string, statuses []string) ([]models.Stone, error)
	List(filter StoneListFilter) ([]models.Stone, int64, error)
	Update(stone *models.Stone) error
	UpdateStatus(id uint, status string) (int64, error)
	UpdatePriority(id uint, priority int) (int64, error)
	UpdateImageURL(id uint, url string) (int64, error)
	Delete(id uint) (int64, error)
	ShapeSummary(statuses []string) ([]ShapeCountRow, error)
	StockStats() (StockStatsRow, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) StoneRepository
	WithContext(ctx context.Context) StoneRepository
}

// GormStoneRepository GORM 实现
type GormStoneRepository struct {
	db        *gorm.DB
	chunkSize int
}

// NewStoneRepository 创建石头仓库
func NewStoneRepository(db *gorm.DB) *GormStoneRepository {
	return &GormStoneRepository{db: db, chunkSize: defaultInsertChunkSz}
}

// SetInsertChunkSize 设置批量写入分片大小
func (r *GormStoneRepository) SetInsertChunkSize(size int) {
	if size > 0 {
		r.chunkSize = size
	}
}

// WithTx 绑定事务
func (r *GormStoneRepository) WithTx(tx *gorm.DB) StoneRepository {
	if tx == nil {
		return r
	}
	return &GormStoneRepository{db: tx, chunkSize: r.chunkSize}
}

// WithContext 绑定请求上下文
func (r *GormStoneRepository) WithContext(ctx context.Context) StoneRepository {
	if ctx == nil {
		return r
	}
	return &GormStoneRepository{db: r.db.WithContext(ctx), chunkSize: r.chunkSize}
}

// Transaction 执行事务
func (r *GormStoneRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// ExistingSKUs 只查询给定集合中已存在的 sku
func (r *GormStoneRepository) ExistingSKUs(skus []string) ([]string, error) {
	found := make([]string, 0)
	for _, chunk := range chunkStrings(skus, skuLookupChunkSize) {
		var part []string
		if err := r.db.Model(&models.Stone{}).
			Where("sku IN ?", chunk).
			Pluck("sku", &part).Error; err != nil {
			return nil, err
		}
		found = append(found, part...)
	}
	return found, nil
}

// InsertBatch 整批新增，任一 sku 已存在时整体回滚
func (r *GormStoneRepository) InsertBatch(stones []models.Stone) error {
	if len(stones) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&stones, r.chunkSize).Error
	})
}

// UpsertBatch 以 sku 为键插入或覆盖
func (r *GormStoneRepository) UpsertBatch(stones []models.Stone) error {
	if len(stones) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(onConflictSKU()).CreateInBatches(&stones, r.chunkSize).Error
	})
}

// UpsertOne 单条插入或覆盖，后台手工录入使用
func (r *GormStoneRepository) UpsertOne(stone *models.Stone) error {
	if stone == nil {
		return nil
	}
	if err := r.db.Clauses(onConflictSKU()).Create(stone).Error; err != nil {
		return err
	}
	// postgres 冲突更新时不一定回填主键，重新读取一次
	var saved models.Stone
	if err := r.db.Where("sku = ?", stone.SKU).First(&saved).Error; err != nil {
		return err
	}
	*stone = saved
	return nil
}

func onConflictSKU() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "sku"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}
}

// GetByID 根据 ID 获取
func (r *GormStoneRepository) GetByID(id uint) (*models.Stone, error) {
	var stone models.Stone
	if err := r.db.First(&stone, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stone, nil
}

// GetBySKU 根据 sku 获取
func (r *GormStoneRepository) GetBySKU(sku string) (*models.Stone, error) {
	var stone models.Stone
	if err := r.db.Where("sku = ?", sku).First(&stone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stone, nil
}

// ListBySKUs 按 sku 批量读取，可限定状态
func (r *GormStoneRepository) ListBySKUs(skus []string, statuses []string) ([]models.Stone, error) {
	stones := make([]models.Stone, 0, len(skus))
	for _, chunk := range chunkStrings(skus, skuLookupChunkSize) {
		query := r.db.Where("sku IN ?", chunk)
		if len(statuses) > 0 {
			query = query.Where("status IN ?", statuses)
		}
		var part []models.Stone
		if err := query.Find(&part).Error; err != nil {
			return nil, err
		}
		stones = append(stones, part...)
	}
	return stones, nil
}

// List 列表查询
func (r *GormStoneRepository) List(filter StoneListFilter) ([]models.Stone, int64, error) {
	query := r.db.Model(&models.Stone{})
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		op := likeOperatorByDialect(dbDialectName(r.db))
		query = query.Where("sku "+op+" ? ESCAPE '\\'", "%"+escapeLike(strings.ToUpper(keyword))+"%")
	}
	query = whereIn(query, "status", filter.Statuses)
	query = whereIn(query, "shape", filter.Shapes)
	query = whereIn(query, "lab", filter.Labs)
	query = whereIn(query, "color", filter.Colors)
	query = whereIn(query, "clarity", filter.Clarities)
	query = whereIn(query, "cut", filter.Cuts)
	if filter.MinCarat != nil {
		query = query.Where("carat >= ?", *filter.MinCarat)
	}
	if filter.MaxCarat != nil {
		query = query.Where("carat <= ?", *filter.MaxCarat)
	}
	if filter.MinPrice != nil {
		query = query.Where("total_amount >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("total_amount <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	stones := make([]models.Stone, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order(stoneOrderClause(filter.Sort)).Find(&stones).Error; err != nil {
		return nil, 0, err
	}
	return stones, total, nil
}

func whereIn(query *gorm.DB, column string, values []string) *gorm.DB {
	if len(values) == 0 {
		return query
	}
	return query.Where(column+" IN ?", values)
}

// stoneOrderClause 排序白名单，未知值按优先级排序
func stoneOrderClause(sort string) string {
	switch sort {
	case constants.CatalogSortPriceLow:
		return "total_amount ASC, id ASC"
	case constants.CatalogSortPriceHigh:
		return "total_amount DESC, id ASC"
	case constants.CatalogSortCaratLow:
		return "carat ASC, id ASC"
	case constants.CatalogSortCaratHigh:
		return "carat DESC, id ASC"
	default:
		return "priority DESC, id DESC"
	}
}

// Update 保存全部字段
func (r *GormStoneRepository) Update(stone *models.Stone) error {
	return r.db.Save(stone).Error
}

// UpdateStatus 更新上架状态
func (r *GormStoneRepository) UpdateStatus(id uint, status string) (int64, error) {
	result := r.db.Model(&models.Stone{}).Where("id = ?", id).Update("status", status)
	return result.RowsAffected, result.Error
}

// UpdatePriority 更新排序优先级
func (r *GormStoneRepository) UpdatePriority(id uint, priority int) (int64, error) {
	result := r.db.Model(&models.Stone{}).Where("id = ?", id).Update("priority", priority)
	return result.RowsAffected, result.Error
}

// UpdateImageURL 更新图片链接
func (r *GormStoneRepository) UpdateImageURL(id uint, url string) (int64, error) {
	result := r.db.Model(&models.Stone{}).Where("id = ?", id).Update("image_url", url)
	return result.RowsAffected, result.Error
}

// Delete 物理删除，sku 可被重新导入
func (r *GormStoneRepository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&models.Stone{}, id)
	return result.RowsAffected, result.Error
}

// ShapeSummary 统计各形状数量
func (r *GormStoneRepository) ShapeSummary(statuses []string) ([]ShapeCountRow, error) {
	rows := make([]ShapeCountRow, 0)
	query := r.db.Model(&models.Stone{}).Select("shape, COUNT(*) AS count")
	query = whereIn(query, "status", statuses)
	if err := query.Group("shape").Order("count DESC, shape ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// StockStats 库存概览
func (r *GormStoneRepository) StockStats() (StockStatsRow, error) {
	var result StockStatsRow
	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := r.db.Model(&models.Stone{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return result, err
	}
	for _, c := range counts {
		switch c.Status {
		case constants.StoneStatusInStock:
			result.InStock = c.Count
		case constants.StoneStatusHidden:
			result.Hidden = c.Count
		case constants.StoneStatusSold:
			result.Sold = c.Count
		}
	}

	var sums struct {
		Value float64
		Carat float64
	}
	if err := r.db.Model(&models.Stone{}).
		Select("COALESCE(SUM(total_amount), 0) AS value, COALESCE(SUM(carat), 0) AS carat").
		Where("status = ?", constants.StoneStatusInStock).
		Scan(&sums).Error; err != nil {
		return result, err
	}
	result.InStockValue = sums.Value
	result.InStockCarat = sums.Carat
	return result, nil
}
