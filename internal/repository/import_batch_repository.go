package repository

import (
	"errors"

	"github.com/gemledger/internal/models"

	"gorm.io/gorm"
)

// ImportBatchRepository 导入批次记录数据访问接口
type ImportBatchRepository interface {
	Create(batch *models.ImportBatch) error
	GetByBatchNo(batchNo string) (*models.ImportBatch, error)
	List(filter ImportBatchListFilter) ([]models.ImportBatch, int64, error)
}

// GormImportBatchRepository GORM 实现
type GormImportBatchRepository struct {
	db *gorm.DB
}

// NewImportBatchRepository 创建导入批次仓库
func NewImportBatchRepository(db *gorm.DB) *GormImportBatchRepository {
	return &GormImportBatchRepository{db: db}
}

// Create 写入批次记录
func (r *GormImportBatchRepository) Create(batch *models.ImportBatch) error {
	if batch == nil {
		return nil
	}
	return r.db.Create(batch).Error
}

// GetByBatchNo 根据批次号获取
func (r *GormImportBatchRepository) GetByBatchNo(batchNo string) (*models.ImportBatch, error) {
	var batch models.ImportBatch
	if err := r.db.Where("batch_no = ?", batchNo).First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &batch, nil
}

// List 批次列表，最新在前
func (r *GormImportBatchRepository) List(filter ImportBatchListFilter) ([]models.ImportBatch, int64, error) {
	query := r.db.Model(&models.ImportBatch{})
	if filter.AdminID != 0 {
		query = query.Where("admin_id = ?", filter.AdminID)
	}
	if filter.Outcome != "" {
		query = query.Where("outcome = ?", filter.Outcome)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	batches := make([]models.ImportBatch, 0)
	if err := applyPagination(query, filter.Page, filter.PageSize).Order("id DESC").Find(&batches).Error; err != nil {
		return nil, 0, err
	}
	return batches, total, nil
}
