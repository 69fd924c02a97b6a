package model

import (
	"time"

	"gorm.io/gorm"
)

// QuarantineRootName 全局隔离区根目录的保留名称.
// 该目录 tenant_id、parent_id、original_tenant_id 均为空，系统内唯一，
// 所有被删除租户的内容以"每租户一棵子树"的形式挂在它下面.
const QuarantineRootName = "Quarantine"

// Folder 文件夹模型.
// tenant_id 为空且 original_tenant_id 非空，表示归属租户被删除后迁入隔离区；
// 两者都为空则是全局对象. original_tenant_id 一次写入，之后不可变（不变量 3）.
type Folder struct {
	ID       uint   `gorm:"primaryKey"     json:"id"`
	Name     string `gorm:"size:512;index" json:"name"`
	ParentID *uint  `gorm:"index"          json:"parent_id,omitempty"`
	OwnerID  uint   `gorm:"index"          json:"owner_id"`

	TenantID         *uint `gorm:"index" json:"tenant_id,omitempty"`
	OriginalTenantID *uint `gorm:"index" json:"original_tenant_id,omitempty"`

	// 隔离迁移审计字段，仅由编排器写入，其余路径只读.
	ReassignedAt *time.Time `json:"reassigned_at,omitempty"`
	ReassignedBy *uint      `json:"reassigned_by,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// State 推导文件夹的所有权状态.
func (f *Folder) State() OwnershipState {
	return ownershipState(f.TenantID, f.OriginalTenantID)
}
