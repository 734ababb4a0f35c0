package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/gemledger/internal/models"
)

const authStateTTL = 10 * time.Minute

// AdminAuthState 管理员令牌版本快照，改密或改角色后删除
type AdminAuthState struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	IsSuper      bool   `json:"is_super"`
	CachedAt     int64  `json:"cached_at"`
}

// Valid 令牌版本一致才视为有效
func (s *AdminAuthState) Valid(tokenVersion uint64) bool {
	return s != nil && s.TokenVersion == tokenVersion
}

func authStateKey(adminID uint) string {
	return "auth:admin:" + strconv.FormatUint(uint64(adminID), 10)
}

// BuildAdminAuthState 从管理员记录生成快照
func BuildAdminAuthState(admin *models.Admin) *AdminAuthState {
	if admin == nil || admin.ID == 0 {
		return nil
	}
	return &AdminAuthState{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		IsSuper:      admin.IsSuper,
		CachedAt:     time.Now().Unix(),
	}
}

// GetAdminAuthState 未命中或 Redis 未启用时返回 nil
func GetAdminAuthState(ctx context.Context, adminID uint) (*AdminAuthState, error) {
	if adminID == 0 {
		return nil, nil
	}
	var state AdminAuthState
	hit, err := GetJSON(ctx, authStateKey(adminID), &state)
	if err != nil || !hit {
		return nil, err
	}
	return &state, nil
}

// SetAdminAuthState 写入快照
func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil {
		return nil
	}
	return SetJSON(ctx, authStateKey(state.AdminID), state, authStateTTL)
}

// DelAdminAuthState 使快照失效，下次请求回表
func DelAdminAuthState(ctx context.Context, adminID uint) error {
	if adminID == 0 {
		return nil
	}
	return Del(ctx, authStateKey(adminID))
}
