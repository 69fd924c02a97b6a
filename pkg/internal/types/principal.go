// Package types 定义请求/响应结构与跨层共享的轻量类型.
package types

import "github.com/yeisme/tenantvault/pkg/internal/model"

// Principal 已认证主体：角色 + 租户归属状态，访问解析器据此计算可见集.
// 每个请求都会从存储重新装载（授权集和租户状态随时可能变化，禁止跨请求缓存）.
type Principal struct {
	UserID           uint       `json:"user_id"`
	Role             model.Role `json:"role"`
	HomeTenantID     *uint      `json:"home_tenant_id,omitempty"`
	GrantedTenantIDs []uint     `json:"granted_tenant_ids,omitempty"`
}

// VisibleTenantIDs 返回主体直接可见的租户 id 集合（本租户 + 授权租户，去重）.
func (p *Principal) VisibleTenantIDs() []uint {
	seen := make(map[uint]struct{}, len(p.GrantedTenantIDs)+1)
	ids := make([]uint, 0, len(p.GrantedTenantIDs)+1)

	if p.HomeTenantID != nil {
		seen[*p.HomeTenantID] = struct{}{}

		ids = append(ids, *p.HomeTenantID)
	}

	for _, id := range p.GrantedTenantIDs {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}

		ids = append(ids, id)
	}

	return ids
}
