package authz

import "fmt"

const (
	RoleReadonlyAuditor  = "readonly_auditor"
	RoleInventoryManager = "inventory_manager"
	RoleSalesConsultant  = "sales_consultant"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: RoleReadonlyAuditor,
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
		},
		{
			Role:     RoleInventoryManager,
			Inherits: []string{RoleReadonlyAuditor},
			Policies: []Policy{
				{Object: "/admin/stones", Action: "*"},
				{Object: "/admin/stones/:id", Action: "*"},
				{Object: "/admin/stones/:id/status", Action: "PATCH"},
				{Object: "/admin/stones/:id/priority", Action: "PATCH"},
				{Object: "/admin/stones/:id/photo/presign", Action: "POST"},
				{Object: "/admin/stones/import", Action: "POST"},
				{Object: "/admin/stones/import/rows", Action: "POST"},
				{Object: "/admin/stones/import/:id/resolve", Action: "POST"},
				{Object: "/admin/stones/import/:id/cancel", Action: "POST"},
			},
		},
		{
			Role:     RoleSalesConsultant,
			Inherits: []string{RoleReadonlyAuditor},
			Policies: []Policy{
				{Object: "/admin/quote-requests/:id/status", Action: "PATCH"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略，重复执行无副作用
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, _, err := s.ensureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, _, err := s.ensureRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
