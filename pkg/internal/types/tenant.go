package types

// DeleteTenantResult 租户删除的结果汇总，逐项计数用于运维审计与幂等重试提示.
type DeleteTenantResult struct {
	TenantID   uint   `json:"tenant_id"`
	TenantName string `json:"tenant_name"`
	// OperationID 本次删除操作的审计 id（ULID）.
	OperationID string `json:"operation_id"`

	FoldersReassigned int64 `json:"folders_reassigned"`
	FilesReassigned   int64 `json:"files_reassigned"`
	UsersDetached     int64 `json:"users_detached"`
	AdminsRemoved     int64 `json:"admins_removed"`
	GrantsRemoved     int64 `json:"grants_removed"`
	DependentsPurged  int64 `json:"dependents_purged"`

	// QuarantineFolderID 该租户隔离子树根目录 id.
	QuarantineFolderID uint `json:"quarantine_folder_id"`
}

// GrantRequest 跨租户授权请求体.
type GrantRequest struct {
	UserID uint `json:"user_id" rule:"required,min=1"`
}
