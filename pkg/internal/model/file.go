package model

import (
	"time"

	"gorm.io/gorm"
)

// File 文件模型，内容存对象存储，这里只记元数据与所有权.
// 文件不直接挂到隔离目录下（它引用 Folder 而不是隔离区），
// 隔离时只清 tenant_id 并写 original_tenant_id.
type File struct {
	ID       uint   `gorm:"primaryKey"      json:"id"`
	Name     string `gorm:"size:512;index"  json:"name"`
	FolderID *uint  `gorm:"index"           json:"folder_id,omitempty"`
	OwnerID  uint   `gorm:"index"           json:"owner_id"`

	TenantID         *uint `gorm:"index" json:"tenant_id,omitempty"`
	OriginalTenantID *uint `gorm:"index" json:"original_tenant_id,omitempty"`

	// 对象存储定位信息，租户删除不会触碰 S3 对象（数据保留策略）.
	Bucket      string `gorm:"size:255"       json:"bucket"`
	ObjectKey   string `gorm:"size:1024;index" json:"object_key"`
	Size        int64  `gorm:"index"          json:"size"`
	ContentType string `gorm:"size:255"       json:"content_type"`
	ETag        string `gorm:"size:64"        json:"etag"`

	ReassignedAt *time.Time `json:"reassigned_at,omitempty"`
	ReassignedBy *uint      `json:"reassigned_by,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// State 推导文件的所有权状态.
func (f *File) State() OwnershipState {
	return ownershipState(f.TenantID, f.OriginalTenantID)
}
