package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/gemledger/internal/models"

	"gorm.io/gorm"
)

// QuoteRequestRepository 询价单数据访问接口
type QuoteRequestRepository interface {
	Create(req *models.QuoteRequest) error
	GetByID(id uint) (*models.QuoteRequest, error)
	List(filter QuoteRequestListFilter) ([]models.QuoteRequest, int64, error)
	UpdateStatus(id uint, status string) (int64, error)
	MarkNotified(id uint, at time.Time) error
}

// GormQuoteRequestRepository GORM 实现
type GormQuoteRequestRepository struct {
	db *gorm.DB
}

// NewQuoteRequestRepository 创建询价单仓库
func NewQuoteRequestRepository(db *gorm.DB) *GormQuoteRequestRepository {
	return &GormQuoteRequestRepository{db: db}
}

// Create 创建询价单及明细
func (r *GormQuoteRequestRepository) Create(req *models.QuoteRequest) error {
	if req == nil {
		return nil
	}
	return r.db.Create(req).Error
}

// GetByID 获取询价单（含明细）
func (r *GormQuoteRequestRepository) GetByID(id uint) (*models.QuoteRequest, error) {
	var req models.QuoteRequest
	if err := r.db.Preload("Items").First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// List 询价单列表
func (r *GormQuoteRequestRepository) List(filter QuoteRequestListFilter) ([]models.QuoteRequest, int64, error) {
	query := r.db.Model(&models.QuoteRequest{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if email := strings.TrimSpace(filter.Email); email != "" {
		query = query.Where("email = ?", strings.ToLower(email))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	reqs := make([]models.QuoteRequest, 0)
	if err := applyPagination(query, filter.Page, filter.PageSize).
		Preload("Items").
		Order("id DESC").
		Find(&reqs).Error; err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

// UpdateStatus 更新跟进状态
func (r *GormQuoteRequestRepository) UpdateStatus(id uint, status string) (int64, error) {
	result := r.db.Model(&models.QuoteRequest{}).Where("id = ?", id).Update("status", status)
	return result.RowsAffected, result.Error
}

// MarkNotified 记录通知邮件发送时间
func (r *GormQuoteRequestRepository) MarkNotified(id uint, at time.Time) error {
	return r.db.Model(&models.QuoteRequest{}).Where("id = ?", id).Update("notified_at", at).Error
}
