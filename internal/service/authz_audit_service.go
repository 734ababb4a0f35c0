package service

import (
	"strings"
	"time"

	"github.com/gemledger/internal/models"
	"github.com/gemledger/internal/repository"
)

// 权限审计动作
const (
	AuthzAuditActionGrantRole  = "grant_role"
	AuthzAuditActionRevokeRole = "revoke_role"
)

// AuthzAuditRecordInput 权限审计记录输入
type AuthzAuditRecordInput struct {
	OperatorAdminID  uint
	OperatorUsername string
	TargetAdminID    uint
	Action           string
	Role             string
	RequestID        string
}

// AuthzAuditService 权限审计服务
type AuthzAuditService struct {
	repo repository.AuthzAuditLogRepository
}

// NewAuthzAuditService 创建权限审计服务
func NewAuthzAuditService(repo repository.AuthzAuditLogRepository) *AuthzAuditService {
	return &AuthzAuditService{repo: repo}
}

// Record 记录权限审计日志
func (s *AuthzAuditService) Record(input AuthzAuditRecordInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	if input.OperatorAdminID == 0 {
		return nil
	}
	if strings.TrimSpace(input.Action) == "" {
		return nil
	}

	item := &models.AuthzAuditLog{
		OperatorAdminID:  input.OperatorAdminID,
		OperatorUsername: strings.TrimSpace(input.OperatorUsername),
		TargetAdminID:    input.TargetAdminID,
		Action:           strings.TrimSpace(input.Action),
		Role:             strings.TrimSpace(input.Role),
		RequestID:        strings.TrimSpace(input.RequestID),
		CreatedAt:        time.Now(),
	}
	return s.repo.Create(item)
}

// RecordRoleChanges 对比角色前后差异，逐条记录授予与撤销
func (s *AuthzAuditService) RecordRoleChanges(base AuthzAuditRecordInput, before, after []string) error {
	prev := make(map[string]struct{}, len(before))
	for _, r := range before {
		prev[r] = struct{}{}
	}
	next := make(map[string]struct{}, len(after))
	for _, r := range after {
		next[r] = struct{}{}
		if _, ok := prev[r]; ok {
			continue
		}
		entry := base
		entry.Action = AuthzAuditActionGrantRole
		entry.Role = r
		if err := s.Record(entry); err != nil {
			return err
		}
	}
	for _, r := range before {
		if _, ok := next[r]; ok {
			continue
		}
		entry := base
		entry.Action = AuthzAuditActionRevokeRole
		entry.Role = r
		if err := s.Record(entry); err != nil {
			return err
		}
	}
	return nil
}

// ListForAdmin 管理端查询权限审计日志
func (s *AuthzAuditService) ListForAdmin(targetAdminID uint, page, pageSize int) ([]models.AuthzAuditLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.AuthzAuditLog{}, 0, nil
	}
	return s.repo.ListByTarget(targetAdminID, page, pageSize)
}
