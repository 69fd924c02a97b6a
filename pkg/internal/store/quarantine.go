package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/tenantvault/pkg/internal/model"
)

// ContainerName 生成某个被删除租户的隔离容器目录名，
// 由租户名与删除日期确定，同一天内的重试会复用同名容器.
func ContainerName(tenantName string, ts time.Time) string {
	return fmt.Sprintf("%s (Deleted %s)", tenantName, ts.UTC().Format("2006-01-02"))
}

// EnsureQuarantineRoot 返回全局隔离区根目录 id，不存在则创建.
// 先查后建，唯一冲突（并发创建）时重查一次，对重试安全.
func (s *OwnershipStore) EnsureQuarantineRoot(ctx context.Context, actorID uint) (uint, error) {
	dbx := s.db.WithContext(ctx)

	find := func() (uint, error) {
		var root model.Folder

		err := dbx.Where("name = ? AND parent_id IS NULL AND tenant_id IS NULL AND original_tenant_id IS NULL",
			model.QuarantineRootName).First(&root).Error
		if err != nil {
			return 0, err
		}

		return root.ID, nil
	}

	if id, err := find(); err == nil {
		return id, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("find quarantine root: %w", classify(err))
	}

	root := model.Folder{Name: model.QuarantineRootName, OwnerID: actorID}
	if err := dbx.Create(&root).Error; err != nil {
		// 并发创建冲突：重查
		if id, ferr := find(); ferr == nil {
			return id, nil
		}

		return 0, fmt.Errorf("create quarantine root: %w", classify(err))
	}

	return root.ID, nil
}

// EnsureQuarantineContainer 返回（或创建）某租户的隔离子树根目录 id.
// 存在性按 (parent=root, original_tenant_id=租户) 判定而非目录名，
// 同一租户 id 永远只有一棵隔离子树；并发/重试时复用已有容器.
func (s *OwnershipStore) EnsureQuarantineContainer(ctx context.Context, tenant *model.Tenant, rootID, actorID uint, ts time.Time) (uint, error) {
	dbx := s.db.WithContext(ctx)

	find := func() (uint, error) {
		var c model.Folder

		err := dbx.Where("parent_id = ? AND original_tenant_id = ? AND tenant_id IS NULL",
			rootID, tenant.ID).First(&c).Error
		if err != nil {
			return 0, err
		}

		return c.ID, nil
	}

	if id, err := find(); err == nil {
		return id, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("find quarantine container for tenant %d: %w", tenant.ID, classify(err))
	}

	origID := tenant.ID
	c := model.Folder{
		Name:             ContainerName(tenant.Name, ts),
		ParentID:         &rootID,
		OwnerID:          actorID,
		OriginalTenantID: &origID,
		ReassignedAt:     &ts,
		ReassignedBy:     &actorID,
	}

	if err := dbx.Create(&c).Error; err != nil {
		if id, ferr := find(); ferr == nil {
			return id, nil
		}

		return 0, fmt.Errorf("create quarantine container for tenant %d: %w", tenant.ID, classify(err))
	}

	return c.ID, nil
}

// QuarantineContainer 隔离容器概览，用于隔离区浏览.
type QuarantineContainer struct {
	FolderID         uint      `json:"folder_id"`
	Name             string    `json:"name"`
	OriginalTenantID uint      `json:"original_tenant_id"`
	ReassignedAt     time.Time `json:"reassigned_at"`
	FolderCount      int64     `json:"folder_count"`
	FileCount        int64     `json:"file_count"`
	UserCount        int64     `json:"user_count"`
}

// ListQuarantineContainers 列出全部隔离容器及各自的隔离行数（只读）.
func (s *OwnershipStore) ListQuarantineContainers(ctx context.Context) ([]QuarantineContainer, error) {
	dbx := s.db.WithContext(ctx)

	rootID, err := s.findQuarantineRootID(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []QuarantineContainer{}, nil
		}

		return nil, fmt.Errorf("list quarantine containers: %w", classify(err))
	}

	var containers []model.Folder
	if err := dbx.Where("parent_id = ? AND original_tenant_id IS NOT NULL", rootID).
		Order("reassigned_at DESC").Find(&containers).Error; err != nil {
		return nil, fmt.Errorf("list quarantine containers: %w", classify(err))
	}

	out := make([]QuarantineContainer, 0, len(containers))

	for _, c := range containers {
		qc := QuarantineContainer{FolderID: c.ID, Name: c.Name, OriginalTenantID: *c.OriginalTenantID}
		if c.ReassignedAt != nil {
			qc.ReassignedAt = *c.ReassignedAt
		}

		// 容器自身不计入文件夹数
		if err := dbx.Model(&model.Folder{}).
			Where("original_tenant_id = ? AND tenant_id IS NULL AND id <> ?", qc.OriginalTenantID, c.ID).
			Count(&qc.FolderCount).Error; err != nil {
			return nil, fmt.Errorf("count quarantined folders: %w", classify(err))
		}

		if err := dbx.Model(&model.File{}).
			Where("original_tenant_id = ? AND tenant_id IS NULL", qc.OriginalTenantID).
			Count(&qc.FileCount).Error; err != nil {
			return nil, fmt.Errorf("count quarantined files: %w", classify(err))
		}

		if err := dbx.Model(&model.User{}).
			Where("original_tenant_id = ? AND tenant_id IS NULL", qc.OriginalTenantID).
			Count(&qc.UserCount).Error; err != nil {
			return nil, fmt.Errorf("count detached users: %w", classify(err))
		}

		out = append(out, qc)
	}

	return out, nil
}

func (s *OwnershipStore) findQuarantineRootID(ctx context.Context) (uint, error) {
	var root model.Folder

	err := s.db.WithContext(ctx).
		Where("name = ? AND parent_id IS NULL AND tenant_id IS NULL AND original_tenant_id IS NULL",
			model.QuarantineRootName).
		First(&root).Error
	if err != nil {
		return 0, err
	}

	return root.ID, nil
}
