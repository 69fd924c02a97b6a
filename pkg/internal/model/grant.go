package model

import "time"

// AccessGrant 跨租户可见性授权（多对多），仅对管理类角色生效.
// (user_id, tenant_id) 唯一（不变量：uniqueness on (user_id, tenant_id)）.
type AccessGrant struct {
	ID        uint `gorm:"primaryKey"                          json:"id"`
	UserID    uint `gorm:"index:idx_grant_user_tenant,unique"  json:"user_id"`
	TenantID  uint `gorm:"index:idx_grant_user_tenant,unique"  json:"tenant_id"`
	GrantedBy uint `gorm:"index"                               json:"granted_by"`

	CreatedAt time.Time `json:"created_at"`
}
