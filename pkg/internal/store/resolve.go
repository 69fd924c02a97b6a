package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeisme/tenantvault/pkg/internal/model"
)

// VisibilityScope 可见范围：由访问解析器按角色分支构造，存储层只负责套用.
// 零值表示什么都看不见.
type VisibilityScope struct {
	// All 无租户过滤（super_admin）.
	All bool
	// IncludeUnowned 包含 tenant_id 为空的行（全局 + 隔离区）.
	IncludeUnowned bool
	// TenantIDs 可见的租户 id 集合（本租户 + 授权租户）.
	TenantIDs []uint
}

// apply 把可见范围翻译成 where 条件.
func (sc VisibilityScope) apply(db *gorm.DB) *gorm.DB {
	switch {
	case sc.All:
		return db
	case sc.IncludeUnowned && len(sc.TenantIDs) > 0:
		return db.Where("tenant_id IS NULL OR tenant_id IN ?", sc.TenantIDs)
	case sc.IncludeUnowned:
		return db.Where("tenant_id IS NULL")
	case len(sc.TenantIDs) > 0:
		return db.Where("tenant_id IN ?", sc.TenantIDs)
	default:
		return db.Where("1 = 0")
	}
}

// ListFolders 返回范围内未软删除的文件夹（只读）.
func (s *OwnershipStore) ListFolders(ctx context.Context, scope VisibilityScope) ([]model.Folder, error) {
	var rows []model.Folder
	if err := scope.apply(s.db.WithContext(ctx).Model(&model.Folder{})).
		Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list folders: %w", classify(err))
	}

	return rows, nil
}

// ListFiles 返回范围内未软删除的文件（只读）.
func (s *OwnershipStore) ListFiles(ctx context.Context, scope VisibilityScope) ([]model.File, error) {
	var rows []model.File
	if err := scope.apply(s.db.WithContext(ctx).Model(&model.File{})).
		Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list files: %w", classify(err))
	}

	return rows, nil
}

// ListUsers 返回范围内的用户（只读）.
func (s *OwnershipStore) ListUsers(ctx context.Context, scope VisibilityScope) ([]model.User, error) {
	var rows []model.User
	if err := scope.apply(s.db.WithContext(ctx).Model(&model.User{})).
		Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", classify(err))
	}

	return rows, nil
}

// FindFile 按 id 查找文件.
func (s *OwnershipStore) FindFile(ctx context.Context, id uint) (*model.File, error) {
	var f model.File
	if err := s.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, fmt.Errorf("find file %d: %w", id, classify(err))
	}

	return &f, nil
}
