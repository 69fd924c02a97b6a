package model

import (
	"time"

	"gorm.io/gorm"
)

// 依附记录：租户范围内的运营数据，没有隔离语义.
// 租户删除时按策略整体清除（见 configs.QuarantineConfig.PurgeDependents）.

// Task 任务记录.
type Task struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	TenantID   uint   `gorm:"index"      json:"tenant_id"`
	Title      string `gorm:"size:512"   json:"title"`
	AssigneeID *uint  `gorm:"index"      json:"assignee_id,omitempty"`
	Done       bool   `json:"done"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CalendarEvent 日历事件.
type CalendarEvent struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	TenantID uint      `gorm:"index"      json:"tenant_id"`
	Title    string    `gorm:"size:512"   json:"title"`
	StartsAt time.Time `gorm:"index"      json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ChatMessage 聊天消息.
type ChatMessage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"index"      json:"tenant_id"`
	SenderID uint   `gorm:"index"      json:"sender_id"`
	Body     string `gorm:"type:text"  json:"body"`

	CreatedAt time.Time `json:"created_at"`
}

// Project 项目记录.
type Project struct {
	ID       uint   `gorm:"primaryKey"     json:"id"`
	TenantID uint   `gorm:"index"          json:"tenant_id"`
	Name     string `gorm:"size:255;index" json:"name"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// All 返回核心模式涉及的全部模型，供外部迁移工具（db migrate）使用.
// 核心本身假定最终模式已经就位.
func All() []any {
	return []any{
		&Tenant{}, &User{}, &Folder{}, &File{}, &AccessGrant{},
		&Task{}, &CalendarEvent{}, &ChatMessage{}, &Project{},
	}
}
