package types

import "github.com/yeisme/tenantvault/pkg/internal/model"

// FolderView 文件夹可见视图，附带推导出的所有权状态.
type FolderView struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	ParentID         *uint  `json:"parent_id,omitempty"`
	OwnerID          uint   `json:"owner_id"`
	TenantID         *uint  `json:"tenant_id,omitempty"`
	OriginalTenantID *uint  `json:"original_tenant_id,omitempty"`
	State            string `json:"state"`
}

// NewFolderView 从模型构造视图.
func NewFolderView(f *model.Folder) FolderView {
	return FolderView{
		ID:               f.ID,
		Name:             f.Name,
		ParentID:         f.ParentID,
		OwnerID:          f.OwnerID,
		TenantID:         f.TenantID,
		OriginalTenantID: f.OriginalTenantID,
		State:            f.State().String(),
	}
}

// FileView 文件可见视图.
type FileView struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	FolderID         *uint  `json:"folder_id,omitempty"`
	OwnerID          uint   `json:"owner_id"`
	TenantID         *uint  `json:"tenant_id,omitempty"`
	OriginalTenantID *uint  `json:"original_tenant_id,omitempty"`
	Size             int64  `json:"size"`
	ContentType      string `json:"content_type"`
	State            string `json:"state"`
}

// NewFileView 从模型构造视图.
func NewFileView(f *model.File) FileView {
	return FileView{
		ID:               f.ID,
		Name:             f.Name,
		FolderID:         f.FolderID,
		OwnerID:          f.OwnerID,
		TenantID:         f.TenantID,
		OriginalTenantID: f.OriginalTenantID,
		Size:             f.Size,
		ContentType:      f.ContentType,
		State:            f.State().String(),
	}
}

// UserView 用户可见视图.
type UserView struct {
	ID               uint   `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Role             string `json:"role"`
	TenantID         *uint  `json:"tenant_id,omitempty"`
	OriginalTenantID *uint  `json:"original_tenant_id,omitempty"`
	State            string `json:"state"`
}

// NewUserView 从模型构造视图.
func NewUserView(u *model.User) UserView {
	return UserView{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Role:             u.Role.String(),
		TenantID:         u.TenantID,
		OriginalTenantID: u.OriginalTenantID,
		State:            u.State().String(),
	}
}

// FolderListResponse 可见文件夹列表响应.
type FolderListResponse struct {
	Total   int          `json:"total"`
	Folders []FolderView `json:"folders"`
}

// FileListResponse 可见文件列表响应.
type FileListResponse struct {
	Total int        `json:"total"`
	Files []FileView `json:"files"`
}

// UserListResponse 可见用户列表响应.
type UserListResponse struct {
	Total int        `json:"total"`
	Users []UserView `json:"users"`
}

// FileURLResponse 预签名下载地址响应.
type FileURLResponse struct {
	FileID    uint   `json:"file_id"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in_seconds"`
}
