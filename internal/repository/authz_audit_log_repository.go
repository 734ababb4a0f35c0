package repository

import (
	"github.com/gemledger/internal/models"

	"gorm.io/gorm"
)

// AuthzAuditLogRepository 权限变更审计数据访问接口
type AuthzAuditLogRepository interface {
	Create(log *models.AuthzAuditLog) error
	ListByTarget(targetAdminID uint, page, pageSize int) ([]models.AuthzAuditLog, int64, error)
}

// GormAuthzAuditLogRepository GORM 实现
type GormAuthzAuditLogRepository struct {
	db *gorm.DB
}

// NewAuthzAuditLogRepository 创建权限审计日志仓库
func NewAuthzAuditLogRepository(db *gorm.DB) *GormAuthzAuditLogRepository {
	return &GormAuthzAuditLogRepository{db: db}
}

// Create 写入一条审计日志
func (r *GormAuthzAuditLogRepository) Create(log *models.AuthzAuditLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// ListByTarget 按被操作管理员查询，targetAdminID 为 0 时不过滤
func (r *GormAuthzAuditLogRepository) ListByTarget(targetAdminID uint, page, pageSize int) ([]models.AuthzAuditLog, int64, error) {
	query := r.db.Model(&models.AuthzAuditLog{})
	if targetAdminID != 0 {
		query = query.Where("target_admin_id = ?", targetAdminID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	logs := make([]models.AuthzAuditLog, 0)
	if err := applyPagination(query, page, pageSize).Order("id DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
