package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/tenantvault/pkg/internal/model"
	"github.com/yeisme/tenantvault/pkg/internal/store"
)

// openTestDB 打开内存 sqlite 并迁移全部模型.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// 内存库绑定单个连接，连接池复用会拿到空库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func uptr(v uint) *uint { return &v }

// TestFindTenant 测试存活租户查找与软删除后的不可见语义.
func TestFindTenant(t *testing.T) {
	db := openTestDB(t)
	st := store.New(db)
	ctx := context.Background()

	tenant := model.Tenant{Name: "Acme", Status: model.TenantActive}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}

	got, err := st.FindTenant(ctx, tenant.ID)
	if err != nil {
		t.Fatalf("FindTenant: %v", err)
	}

	if got.Name != "Acme" {
		t.Errorf("expected name Acme, got %s", got.Name)
	}

	// 软删除后视为不存在
	if err := db.Delete(&model.Tenant{}, tenant.ID).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	if _, err := st.FindTenant(ctx, tenant.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for soft-deleted tenant, got %v", err)
	}
}

// TestEnsureQuarantineRoot 测试隔离区根目录的创建与幂等复用.
func TestEnsureQuarantineRoot(t *testing.T) {
	db := openTestDB(t)
	st := store.New(db)
	ctx := context.Background()

	first, err := st.EnsureQuarantineRoot(ctx, 1)
	if err != nil {
		t.Fatalf("EnsureQuarantineRoot: %v", err)
	}

	second, err := st.EnsureQuarantineRoot(ctx, 2)
	if err != nil {
		t.Fatalf("EnsureQuarantineRoot (repeat): %v", err)
	}

	if first != second {
		t.Errorf("expected single quarantine root, got %d and %d", first, second)
	}

	var root model.Folder
	if err := db.First(&root, first).Error; err != nil {
		t.Fatalf("load root: %v", err)
	}

	if root.Name != model.QuarantineRootName || root.ParentID != nil || root.TenantID != nil {
		t.Errorf("quarantine root has wrong shape: %+v", root)
	}
}

// TestEnsureQuarantineContainer 测试同一租户的容器按 original_tenant_id 复用.
func TestEnsureQuarantineContainer(t *testing.T) {
	db := openTestDB(t)
	st := store.New(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tenant := model.Tenant{Name: "Acme", Status: model.TenantActive}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}

	rootID, err := st.EnsureQuarantineRoot(ctx, 1)
	if err != nil {
		t.Fatalf("EnsureQuarantineRoot: %v", err)
	}

	c1, err := st.EnsureQuarantineContainer(ctx, &tenant, rootID, 1, now)
	if err != nil {
		t.Fatalf("EnsureQuarantineContainer: %v", err)
	}

	// 换一个时间戳重试，仍应复用同一容器
	c2, err := st.EnsureQuarantineContainer(ctx, &tenant, rootID, 1, now.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("EnsureQuarantineContainer (retry): %v", err)
	}

	if c1 != c2 {
		t.Errorf("expected container reuse, got %d and %d", c1, c2)
	}

	var c model.Folder
	if err := db.First(&c, c1).Error; err != nil {
		t.Fatalf("load container: %v", err)
	}

	if c.Name != "Acme (Deleted 2026-03-14)" {
		t.Errorf("unexpected container name: %s", c.Name)
	}

	if c.OriginalTenantID == nil || *c.OriginalTenantID != tenant.ID {
		t.Errorf("container missing original_tenant_id: %+v", c)
	}
}

// TestDetachAndTagFolders 测试子树根重挂与内部层级保留.
func TestDetachAndTagFolders(t *testing.T) {
	db := openTestDB(t)
	st := store.New(db)
	ctx := context.Background()
	now := time.Now().UTC()

	tenant := model.Tenant{Name: "Acme", Status: model.TenantActive}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}

	rootID, _ := st.EnsureQuarantineRoot(ctx, 1)
	containerID, _ := st.EnsureQuarantineContainer(ctx, &tenant, rootID, 1, now)

	top := model.Folder{Name: "Docs", OwnerID: 1, TenantID: uptr(tenant.ID)}
	if err := db.Create(&top).Error; err != nil {
		t.Fatalf("seed top folder: %v", err)
	}

	child := model.Folder{Name: "Reports", OwnerID: 1, TenantID: uptr(tenant.ID), ParentID: &top.ID}
	if err := db.Create(&child).Error; err != nil {
		t.Fatalf("seed child folder: %v", err)
	}

	n, err := st.DetachAndTagFolders(ctx, tenant.ID, containerID, 7, now)
	if err != nil {
		t.Fatalf("DetachAndTagFolders: %v", err)
	}

	if n != 2 {
		t.Errorf("expected 2 folders detached, got %d", n)
	}

	var gotTop, gotChild model.Folder
	if err := db.First(&gotTop, top.ID).Error; err != nil {
		t.Fatalf("load top: %v", err)
	}

	if err := db.First(&gotChild, child.ID).Error; err != nil {
		t.Fatalf("load child: %v", err)
	}

	// 子树根挂到容器，内部层级不变
	if gotTop.ParentID == nil || *gotTop.ParentID != containerID {
		t.Errorf("top folder not reparented to container: %+v", gotTop)
	}

	if gotChild.ParentID == nil || *gotChild.ParentID != top.ID {
		t.Errorf("child folder hierarchy broken: %+v", gotChild)
	}

	for _, f := range []model.Folder{gotTop, gotChild} {
		if f.TenantID != nil {
			t.Errorf("folder %d still owned", f.ID)
		}

		if f.OriginalTenantID == nil || *f.OriginalTenantID != tenant.ID {
			t.Errorf("folder %d missing original_tenant_id", f.ID)
		}

		if f.ReassignedBy == nil || *f.ReassignedBy != 7 {
			t.Errorf("folder %d missing reassigned_by", f.ID)
		}
	}

	// 幂等：重复执行匹配 0 行
	n, err = st.DetachAndTagFolders(ctx, tenant.ID, containerID, 7, now)
	if err != nil {
		t.Fatalf("DetachAndTagFolders (repeat): %v", err)
	}

	if n != 0 {
		t.Errorf("expected 0 on repeat, got %d", n)
	}
}

// TestDetachUsers 测试 original_tenant_id 一次写入与角色过滤.
func TestDetachUsers(t *testing.T) {
	db := openTestDB(t)
	st := store.New(db)
	ctx := context.Background()
	now := time.Now().UTC()

	users := []model.User{
		{Email: "m@acme.io", Role: model.RoleManager, TenantID: uptr(42)},
		{Email: "u@acme.io", Role: model.RoleUser, TenantID: uptr(42)},
		// 此前已经从 41 号租户隔离过一次，又被分配进 42
		{Email: "moved@acme.io", Role: model.RoleUser, TenantID: uptr(42), OriginalTenantID: uptr(41)},
		{Email: "a@acme.io", Role: model.RoleAdmin, TenantID: uptr(42)},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	n, err := st.DetachUsers(ctx, 42, now)
	if err != nil {
		t.Fatalf("DetachUsers: %v", err)
	}

	// 管理员不在此步骤处理
	if n != 3 {
		t.Errorf("expected 3 users detached, got %d", n)
	}

	var moved model.User
	if err := db.Where("email = ?", "moved@acme.io").First(&moved).Error; err != nil {
		t.Fatalf("load moved user: %v", err)
	}

	// original_tenant_id 一次写入后不可变
	if moved.OriginalTenantID == nil || *moved.OriginalTenantID != 41 {
		t.Errorf("original_tenant_id overwritten: %+v", moved.OriginalTenantID)
	}

	var admin model.User
	if err := db.Where("email = ?", "a@acme.io").First(&admin).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}

	if admin.TenantID == nil {
		t.Error("admin should not be detached by DetachUsers")
	}
}

// TestGrantUniqueness 测试 (user_id, tenant_id) 唯一与撤销语义.
func TestGrantUniqueness(t *testing.T) {
	db := openTestDB(t)
	st := store.New(db)
	ctx := context.Background()

	if _, err := st.Grant(ctx, 5, 42, 1); err != nil {
		t.Fatalf("Grant: %v", err)
	}

	if _, err := st.Grant(ctx, 5, 42, 1); !errors.Is(err, store.ErrConstraintViolation) {
		t.Errorf("expected ErrConstraintViolation on duplicate grant, got %v", err)
	}

	if err := st.Revoke(ctx, 5, 42); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	if err := st.Revoke(ctx, 5, 42); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double revoke, got %v", err)
	}
}

// TestCountOwned 测试归零检查所用的计数.
func TestCountOwned(t *testing.T) {
	db := openTestDB(t)
	st := store.New(db)
	ctx := context.Background()

	if err := db.Create(&model.Folder{Name: "F", OwnerID: 1, TenantID: uptr(9)}).Error; err != nil {
		t.Fatalf("seed folder: %v", err)
	}

	if err := db.Create(&model.File{Name: "f.txt", OwnerID: 1, TenantID: uptr(9)}).Error; err != nil {
		t.Fatalf("seed file: %v", err)
	}

	for kind, want := range map[store.EntityKind]int64{
		store.KindFolder: 1,
		store.KindFile:   1,
		store.KindUser:   0,
	} {
		got, err := st.CountOwned(ctx, 9, kind)
		if err != nil {
			t.Fatalf("CountOwned(%s): %v", kind, err)
		}

		if got != want {
			t.Errorf("CountOwned(%s) = %d, want %d", kind, got, want)
		}
	}

	if _, err := st.CountOwned(ctx, 9, store.EntityKind("widget")); err == nil {
		t.Error("expected error for unknown entity kind")
	}
}

// TestListQuarantineContainers 测试隔离区浏览的行数统计.
func TestListQuarantineContainers(t *testing.T) {
	db := openTestDB(t)
	st := store.New(db)
	ctx := context.Background()
	now := time.Now().UTC()

	// 隔离区不存在时返回空列表
	list, err := st.ListQuarantineContainers(ctx)
	if err != nil {
		t.Fatalf("ListQuarantineContainers (empty): %v", err)
	}

	if len(list) != 0 {
		t.Errorf("expected empty list, got %d", len(list))
	}

	tenant := model.Tenant{Name: "Acme", Status: model.TenantActive}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}

	rootID, _ := st.EnsureQuarantineRoot(ctx, 1)
	containerID, _ := st.EnsureQuarantineContainer(ctx, &tenant, rootID, 1, now)

	if err := db.Create(&model.Folder{Name: "Docs", OwnerID: 1, TenantID: uptr(tenant.ID)}).Error; err != nil {
		t.Fatalf("seed folder: %v", err)
	}

	if err := db.Create(&model.File{Name: "a.txt", OwnerID: 1, TenantID: uptr(tenant.ID)}).Error; err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if _, err := st.DetachAndTagFolders(ctx, tenant.ID, containerID, 1, now); err != nil {
		t.Fatalf("detach folders: %v", err)
	}

	if _, err := st.DetachAndTagFiles(ctx, tenant.ID, 1, now); err != nil {
		t.Fatalf("detach files: %v", err)
	}

	list, err = st.ListQuarantineContainers(ctx)
	if err != nil {
		t.Fatalf("ListQuarantineContainers: %v", err)
	}

	if len(list) != 1 {
		t.Fatalf("expected 1 container, got %d", len(list))
	}

	got := list[0]
	if got.OriginalTenantID != tenant.ID || got.FolderCount != 1 || got.FileCount != 1 {
		t.Errorf("unexpected container summary: %+v", got)
	}
}
