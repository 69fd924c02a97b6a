package model

import (
	"time"

	"gorm.io/gorm"
)

// TenantStatus 租户状态闭合枚举.
type TenantStatus string

const (
	TenantActive    TenantStatus = "active"
	TenantSuspended TenantStatus = "suspended"
	TenantPending   TenantStatus = "pending"
)

// Tenant 租户（公司/组织）模型，通过 tenant_id 拥有用户与内容.
// 删除时永远软删除：编排器先把名下数据迁入隔离区，再打 deleted_at，
// 带 deleted_at 的租户逻辑上不存在，且不得再拥有任何行.
type Tenant struct {
	ID     uint         `gorm:"primaryKey"                               json:"id"`
	Name   string       `gorm:"size:255;uniqueIndex"                     json:"name"`
	Status TenantStatus `gorm:"size:32;index;default:'active'"           json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsActive 租户是否处于可登录状态.
func (t *Tenant) IsActive() bool {
	return t.Status == TenantActive
}
