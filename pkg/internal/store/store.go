// Package store 提供所有权存储：Tenant/User/Folder/File/AccessGrant 上的
// 原子读写操作，以可组合操作（而非裸查询）的形式暴露给编排器与访问解析器，
// 上层不出现任何存储细节.
package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/tenantvault/pkg/internal/model"
)

// EntityKind 可被租户拥有的实体种类.
type EntityKind string

const (
	KindFolder EntityKind = "folder"
	KindFile   EntityKind = "file"
	KindUser   EntityKind = "user"
)

// OwnershipStore 基于传入的 gorm 句柄执行所有权操作.
// 句柄可以是事务（编排器）也可以是普通连接（解析器，只读）.
type OwnershipStore struct {
	db *gorm.DB
}

// New 用给定的 gorm 句柄创建 OwnershipStore.
func New(db *gorm.DB) *OwnershipStore {
	return &OwnershipStore{db: db}
}

// FindTenant 按 id 查找存活租户，软删除的租户视为不存在.
func (s *OwnershipStore) FindTenant(ctx context.Context, id uint) (*model.Tenant, error) {
	var t model.Tenant
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, fmt.Errorf("find tenant %d: %w", id, classify(err))
	}

	return &t, nil
}

// FindUser 按 id 查找用户.
func (s *OwnershipStore) FindUser(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, classify(err))
	}

	return &u, nil
}

// CountOwned 统计租户当前拥有的行数.
func (s *OwnershipStore) CountOwned(ctx context.Context, tenantID uint, kind EntityKind) (int64, error) {
	var (
		count int64
		err   error
	)

	dbx := s.db.WithContext(ctx)

	switch kind {
	case KindFolder:
		err = dbx.Model(&model.Folder{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	case KindFile:
		err = dbx.Model(&model.File{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	case KindUser:
		err = dbx.Model(&model.User{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	default:
		return 0, fmt.Errorf("count owned: unknown entity kind %q", kind)
	}

	if err != nil {
		return 0, fmt.Errorf("count owned %s of tenant %d: %w", kind, tenantID, classify(err))
	}

	return count, nil
}

// DetachAndTagFolders 把租户名下的文件夹迁入隔离区：
// 清 tenant_id、写 original_tenant_id 与审计戳，并把子树根重新挂到隔离容器下
// （内部层级保持不变）. 幂等：同一租户重复执行匹配 0 行，不报错.
func (s *OwnershipStore) DetachAndTagFolders(ctx context.Context, tenantID, containerID, actorID uint, ts time.Time) (int64, error) {
	dbx := s.db.WithContext(ctx)

	// 先收集归属行 id，detach 之后无法再按 tenant_id 找到它们
	var ids []uint
	if err := dbx.Model(&model.Folder{}).Where("tenant_id = ?", tenantID).Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("collect folders of tenant %d: %w", tenantID, classify(err))
	}

	if len(ids) == 0 {
		return 0, nil
	}

	tx := dbx.Model(&model.Folder{}).Where("tenant_id = ?", tenantID).Updates(map[string]any{
		"tenant_id":          nil,
		"original_tenant_id": tenantID,
		"reassigned_at":      ts,
		"reassigned_by":      actorID,
	})
	if tx.Error != nil {
		return 0, fmt.Errorf("detach folders of tenant %d: %w", tenantID, classify(tx.Error))
	}

	// 只有子树根（无父、或父不属于同一租户）挂到隔离容器，保留内部结构
	err := dbx.Model(&model.Folder{}).
		Where("id IN ?", ids).
		Where("parent_id IS NULL OR parent_id NOT IN ?", ids).
		Update("parent_id", containerID).Error
	if err != nil {
		return 0, fmt.Errorf("reparent folders of tenant %d: %w", tenantID, classify(err))
	}

	return tx.RowsAffected, nil
}

// DetachAndTagFiles 把租户名下的文件迁入隔离态.
// 文件引用 Folder 而不是隔离目录，因此不做重新挂载. 幂等同上.
func (s *OwnershipStore) DetachAndTagFiles(ctx context.Context, tenantID, actorID uint, ts time.Time) (int64, error) {
	tx := s.db.WithContext(ctx).Model(&model.File{}).Where("tenant_id = ?", tenantID).Updates(map[string]any{
		"tenant_id":          nil,
		"original_tenant_id": tenantID,
		"reassigned_at":      ts,
		"reassigned_by":      actorID,
	})
	if tx.Error != nil {
		return 0, fmt.Errorf("detach files of tenant %d: %w", tenantID, classify(tx.Error))
	}

	return tx.RowsAffected, nil
}

// DetachUsers 把租户名下非管理角色的用户脱离租户：
// 清 tenant_id、保留 original_tenant_id（只在为空时写入，一次写入不可变）、
// 打 tenant_removed_at. 管理角色不在此处理（见 DeleteTenantAdmins / DetachTenantAdmins）.
func (s *OwnershipStore) DetachUsers(ctx context.Context, tenantID uint, ts time.Time) (int64, error) {
	tx := s.db.WithContext(ctx).Model(&model.User{}).
		Where("tenant_id = ? AND role IN ?", tenantID, roleStrings(model.NonAdministrativeRoles)).
		Updates(map[string]any{
			"tenant_id":          nil,
			"original_tenant_id": gorm.Expr("COALESCE(original_tenant_id, ?)", tenantID),
			"tenant_removed_at":  ts,
		})
	if tx.Error != nil {
		return 0, fmt.Errorf("detach users of tenant %d: %w", tenantID, classify(tx.Error))
	}

	return tx.RowsAffected, nil
}

// DeleteTenantAdmins 直接删除该租户的管理角色账号（无租户即无立足点，不隔离）.
func (s *OwnershipStore) DeleteTenantAdmins(ctx context.Context, tenantID uint) (int64, error) {
	tx := s.db.WithContext(ctx).Unscoped().
		Where("tenant_id = ? AND role IN ?", tenantID, []string{string(model.RoleAdmin), string(model.RoleSuperAdmin)}).
		Delete(&model.User{})
	if tx.Error != nil {
		return 0, fmt.Errorf("delete admins of tenant %d: %w", tenantID, classify(tx.Error))
	}

	return tx.RowsAffected, nil
}

// DetachTenantAdmins 备选策略：管理角色也按 detach 保留为全局账号.
func (s *OwnershipStore) DetachTenantAdmins(ctx context.Context, tenantID uint, ts time.Time) (int64, error) {
	tx := s.db.WithContext(ctx).Model(&model.User{}).
		Where("tenant_id = ? AND role IN ?", tenantID, []string{string(model.RoleAdmin), string(model.RoleSuperAdmin)}).
		Updates(map[string]any{
			"tenant_id":          nil,
			"original_tenant_id": gorm.Expr("COALESCE(original_tenant_id, ?)", tenantID),
			"tenant_removed_at":  ts,
		})
	if tx.Error != nil {
		return 0, fmt.Errorf("detach admins of tenant %d: %w", tenantID, classify(tx.Error))
	}

	return tx.RowsAffected, nil
}

// RemoveGrants 清除租户的全部跨租户授权行.
func (s *OwnershipStore) RemoveGrants(ctx context.Context, tenantID uint) (int64, error) {
	tx := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Delete(&model.AccessGrant{})
	if tx.Error != nil {
		return 0, fmt.Errorf("remove grants of tenant %d: %w", tenantID, classify(tx.Error))
	}

	return tx.RowsAffected, nil
}

// PurgeDependents 删除租户范围内没有隔离语义的依附记录
// （任务、日历、聊天、项目），仅限给定租户.
func (s *OwnershipStore) PurgeDependents(ctx context.Context, tenantID uint) (int64, error) {
	dbx := s.db.WithContext(ctx).Unscoped()
	total := int64(0)

	for _, m := range []any{&model.Task{}, &model.CalendarEvent{}, &model.ChatMessage{}, &model.Project{}} {
		tx := dbx.Where("tenant_id = ?", tenantID).Delete(m)
		if tx.Error != nil {
			return total, fmt.Errorf("purge dependents of tenant %d: %w", tenantID, classify(tx.Error))
		}

		total += tx.RowsAffected
	}

	return total, nil
}

// DeleteTenant 软删除租户行. 只允许在上游步骤完成、租户名下归零之后调用（不变量 2）.
func (s *OwnershipStore) DeleteTenant(ctx context.Context, tenantID uint) error {
	tx := s.db.WithContext(ctx).Delete(&model.Tenant{}, tenantID)
	if tx.Error != nil {
		return fmt.Errorf("delete tenant %d: %w", tenantID, classify(tx.Error))
	}

	if tx.RowsAffected == 0 {
		return fmt.Errorf("delete tenant %d: %w", tenantID, ErrNotFound)
	}

	return nil
}

// GrantedTenantIDs 返回授予给用户的租户 id 集合.
func (s *OwnershipStore) GrantedTenantIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := s.db.WithContext(ctx).Model(&model.AccessGrant{}).
		Where("user_id = ?", userID).Pluck("tenant_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("granted tenants of user %d: %w", userID, classify(err))
	}

	return ids, nil
}

// Grant 新增一条跨租户授权，(user_id, tenant_id) 冲突时返回 ErrConstraintViolation.
func (s *OwnershipStore) Grant(ctx context.Context, userID, tenantID, grantedBy uint) (*model.AccessGrant, error) {
	g := model.AccessGrant{UserID: userID, TenantID: tenantID, GrantedBy: grantedBy}
	if err := s.db.WithContext(ctx).Create(&g).Error; err != nil {
		return nil, fmt.Errorf("grant tenant %d to user %d: %w", tenantID, userID, classify(err))
	}

	return &g, nil
}

// Revoke 撤销一条跨租户授权，不存在时返回 ErrNotFound.
func (s *OwnershipStore) Revoke(ctx context.Context, userID, tenantID uint) error {
	tx := s.db.WithContext(ctx).
		Where("user_id = ? AND tenant_id = ?", userID, tenantID).
		Delete(&model.AccessGrant{})
	if tx.Error != nil {
		return fmt.Errorf("revoke tenant %d from user %d: %w", tenantID, userID, classify(tx.Error))
	}

	if tx.RowsAffected == 0 {
		return fmt.Errorf("revoke tenant %d from user %d: %w", tenantID, userID, ErrNotFound)
	}

	return nil
}

func roleStrings(roles []model.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}

	return out
}
