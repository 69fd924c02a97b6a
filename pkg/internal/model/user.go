package model

import (
	"time"

	"gorm.io/gorm"
)

// User 用户模型.
// tenant_id 为空表示"未分配"：管理类角色属于全局账号（by design），
// user/manager 则处于等待重新分配的终态，登录被拒绝.
// original_tenant_id 是一次性写入的历史指针，永不清除，用于审计与支持排查.
type User struct {
	ID    uint   `gorm:"primaryKey"            json:"id"`
	Email string `gorm:"size:255;uniqueIndex"  json:"email"`
	Name  string `gorm:"size:255"              json:"name"`
	Role  Role   `gorm:"size:32;index;default:'user'" json:"role"`

	TenantID         *uint `gorm:"index" json:"tenant_id,omitempty"`
	OriginalTenantID *uint `gorm:"index" json:"original_tenant_id,omitempty"`
	// TenantRemovedAt 被编排器 detach 的时间戳.
	TenantRemovedAt *time.Time `json:"tenant_removed_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// State 推导用户的所有权状态.
func (u *User) State() OwnershipState {
	switch {
	case u.TenantID != nil:
		return StateActive
	case u.Role.Administrative():
		return StateGlobal
	default:
		return StateDetached
	}
}
