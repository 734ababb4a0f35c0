package admin

import (
	"errors"

	"github.com/gemledger/internal/authz"
	"github.com/gemledger/internal/cache"
	handlershared "github.com/gemledger/internal/http/handlers/shared"
	"github.com/gemledger/internal/http/response"
	"github.com/gemledger/internal/service"

	"github.com/gin-gonic/gin"
)

// ListAdmins 管理员列表
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.AdminRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.admin_fetch_failed", err)
		return
	}
	response.Success(c, admins)
}

// ListAuthzRoles 角色及其策略
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	items := make([]gin.H, 0, len(roles))
	for _, role := range roles {
		policies, err := h.AuthzService.GetRolePolicies(role)
		if err != nil {
			respondError(c, response.CodeInternal, "error.internal", err)
			return
		}
		items = append(items, gin.H{"role": role, "policies": policies})
	}
	response.Success(c, items)
}

// GetAdminRoles 查询管理员角色
func (h *Handler) GetAdminRoles(c *gin.Context) {
	targetID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(targetID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"admin_id": targetID, "roles": roles})
}

type setAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

// SetAdminRoles 覆盖管理员角色并写入审计
func (h *Handler) SetAdminRoles(c *gin.Context) {
	targetID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req setAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	target, err := h.AdminRepo.GetByID(targetID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.admin_fetch_failed", err)
		return
	}
	if target == nil {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}

	before, err := h.AuthzService.GetAdminRoles(targetID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if err := h.AuthzService.SetAdminRoles(targetID, req.Roles); err != nil {
		if errors.Is(err, authz.ErrUnknownRole) {
			respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.admin_update_failed", err)
		return
	}
	after, err := h.AuthzService.GetAdminRoles(targetID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	_ = cache.DelAdminAuthState(c.Request.Context(), targetID)

	operatorID, _ := getAdminID(c)
	if err := h.AuthzAuditService.RecordRoleChanges(service.AuthzAuditRecordInput{
		OperatorAdminID:  operatorID,
		OperatorUsername: currentUsername(c),
		TargetAdminID:    targetID,
		RequestID:        handlershared.RequestID(c),
	}, before, after); err != nil {
		requestLog(c).Warnw("authz_audit_record_failed", "target_admin_id", targetID, "error", err)
	}
	response.Success(c, gin.H{"admin_id": targetID, "roles": after})
}

// ListAuthzAuditLogs 某管理员的角色变更记录
func (h *Handler) ListAuthzAuditLogs(c *gin.Context) {
	targetID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	logs, total, err := h.AuthzAuditService.ListForAdmin(targetID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, logs, response.NewPagination(page, pageSize, total))
}
