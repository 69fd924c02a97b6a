package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 租户生命周期领域 --------------------------

// TenantRef 标识事件涉及的租户.
type TenantRef struct {
	TenantID   uint   `json:"tenant_id"`
	TenantName string `json:"tenant_name,omitempty"`
}

// TenantDeletedPayload 租户删除事务提交完成.
// OperationID 为本次删除的唯一操作号，与日志和指标关联.
type TenantDeletedPayload struct {
	Tenant             TenantRef `json:"tenant"`
	OperationID        string    `json:"operation_id"`
	ActorID            uint      `json:"actor_id"`
	FoldersReassigned  int64     `json:"folders_reassigned"`
	FilesReassigned    int64     `json:"files_reassigned"`
	UsersDetached      int64     `json:"users_detached"`
	AdminsRemoved      int64     `json:"admins_removed"`
	GrantsRemoved      int64     `json:"grants_removed"`
	DependentsPurged   int64     `json:"dependents_purged"`
	QuarantineFolderID uint      `json:"quarantine_folder_id"`
}

// TenantDeleteFailedPayload 租户删除回滚.
type TenantDeleteFailedPayload struct {
	Tenant      TenantRef `json:"tenant"`
	OperationID string    `json:"operation_id"`
	Stage       string    `json:"stage,omitempty"` // 失败发生的步骤
	Error       string    `json:"error"`
}

// QuarantineCreatedPayload 删除事务中创建了隔离容器.
type QuarantineCreatedPayload struct {
	Tenant        TenantRef `json:"tenant"`
	OperationID   string    `json:"operation_id"`
	ContainerID   uint      `json:"container_id"`
	ContainerName string    `json:"container_name"`
}

// UsersDetachedPayload 非管理员用户批量脱离租户.
type UsersDetachedPayload struct {
	Tenant      TenantRef `json:"tenant"`
	OperationID string    `json:"operation_id"`
	Count       int64     `json:"count"`
}

// LoginDeniedPayload 登录被网关拒绝.
type LoginDeniedPayload struct {
	UserID uint   `json:"user_id"`
	Reason string `json:"reason"`
}

// -------------------------- 跨租户授权领域 --------------------------

// GrantChangedPayload 授权创建或回收.
type GrantChangedPayload struct {
	UserID    uint `json:"user_id"`
	TenantID  uint `json:"tenant_id"`
	ChangedBy uint `json:"changed_by,omitempty"`
}
