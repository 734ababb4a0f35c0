package models

import "time"

// AuthzAuditLog 后台角色授予与撤销记录
type AuthzAuditLog struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	OperatorAdminID  uint      `gorm:"index;not null" json:"operator_admin_id"`
	OperatorUsername string    `gorm:"type:varchar(100);not null;default:''" json:"operator_username"`
	TargetAdminID    uint      `gorm:"index;not null" json:"target_admin_id"`
	Action           string    `gorm:"type:varchar(50);index;not null" json:"action"` // grant_role / revoke_role
	Role             string    `gorm:"type:varchar(120);not null;default:''" json:"role"`
	RequestID        string    `gorm:"type:varchar(64);not null;default:''" json:"request_id"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (AuthzAuditLog) TableName() string {
	return "authz_audit_logs"
}
