package service_test

import (
	"errors"
	"testing"

	"github.com/yeisme/tenantvault/pkg/configs"
	"github.com/yeisme/tenantvault/pkg/internal/model"
	"github.com/yeisme/tenantvault/pkg/internal/service"
	"github.com/yeisme/tenantvault/pkg/internal/store"
	"gorm.io/gorm"
)

// seedAcme 构造一个完整的待删除租户及一个旁观租户：
// Acme 名下有两层文件夹、两份文件、经理/成员/管理员各一、一条跨租户授权和若干依附记录；
// Beta 租户的数据不应被波及.
func seedAcme(t *testing.T, db *gorm.DB) (acme, beta model.Tenant) {
	t.Helper()

	acme = model.Tenant{Name: "Acme", Status: model.TenantActive}
	beta = model.Tenant{Name: "Beta", Status: model.TenantActive}

	for _, tn := range []*model.Tenant{&acme, &beta} {
		if err := db.Create(tn).Error; err != nil {
			t.Fatalf("seed tenant: %v", err)
		}
	}

	docs := model.Folder{Name: "Docs", OwnerID: 1, TenantID: &acme.ID}
	if err := db.Create(&docs).Error; err != nil {
		t.Fatalf("seed folder: %v", err)
	}

	reports := model.Folder{Name: "Reports", OwnerID: 1, TenantID: &acme.ID, ParentID: &docs.ID}
	if err := db.Create(&reports).Error; err != nil {
		t.Fatalf("seed folder: %v", err)
	}

	files := []model.File{
		{Name: "plan.pdf", OwnerID: 1, TenantID: &acme.ID, FolderID: &docs.ID, Bucket: "tv", ObjectKey: "acme/plan.pdf"},
		{Name: "q1.xlsx", OwnerID: 1, TenantID: &acme.ID, FolderID: &reports.ID, Bucket: "tv", ObjectKey: "acme/q1.xlsx"},
	}
	for i := range files {
		if err := db.Create(&files[i]).Error; err != nil {
			t.Fatalf("seed file: %v", err)
		}
	}

	users := []model.User{
		{Email: "manager@acme.io", Role: model.RoleManager, TenantID: &acme.ID},
		{Email: "user@acme.io", Role: model.RoleUser, TenantID: &acme.ID},
		{Email: "admin@acme.io", Role: model.RoleAdmin, TenantID: &acme.ID},
		{Email: "user@beta.io", Role: model.RoleUser, TenantID: &beta.ID},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	grant := model.AccessGrant{UserID: users[2].ID, TenantID: acme.ID, GrantedBy: 1}
	if err := db.Create(&grant).Error; err != nil {
		t.Fatalf("seed grant: %v", err)
	}

	deps := []any{
		&model.Task{TenantID: acme.ID, Title: "close books"},
		&model.CalendarEvent{TenantID: acme.ID, Title: "standup"},
		&model.ChatMessage{TenantID: acme.ID, SenderID: users[0].ID, Body: "hi"},
		&model.Project{TenantID: acme.ID, Name: "migration"},
		&model.Task{TenantID: beta.ID, Title: "beta task"},
	}
	for _, d := range deps {
		if err := db.Create(d).Error; err != nil {
			t.Fatalf("seed dependent: %v", err)
		}
	}

	return acme, beta
}

// TestDeleteTenant 完整删除场景：隔离归档、成员脱离、授权清理、软删除与旁观租户隔离.
func TestDeleteTenant(t *testing.T) {
	ctx, db := newTestCtx(t)
	acme, beta := seedAcme(t, db)

	svc := service.NewTenantService(ctx)

	result, err := svc.Delete(ctx, acme.ID, 99)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if result.FoldersReassigned != 2 {
		t.Errorf("FoldersReassigned = %d, want 2", result.FoldersReassigned)
	}

	if result.FilesReassigned != 2 {
		t.Errorf("FilesReassigned = %d, want 2", result.FilesReassigned)
	}

	if result.UsersDetached != 2 {
		t.Errorf("UsersDetached = %d, want 2", result.UsersDetached)
	}

	if result.AdminsRemoved != 1 {
		t.Errorf("AdminsRemoved = %d, want 1", result.AdminsRemoved)
	}

	if result.GrantsRemoved != 1 {
		t.Errorf("GrantsRemoved = %d, want 1", result.GrantsRemoved)
	}

	if result.DependentsPurged != 4 {
		t.Errorf("DependentsPurged = %d, want 4", result.DependentsPurged)
	}

	// 租户软删除，逻辑上不存在
	st := store.New(db)
	if _, err := st.FindTenant(ctx, acme.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected deleted tenant to be gone, got %v", err)
	}

	// 顶层文件夹挂到隔离容器，层级保留
	var docs model.Folder
	if err := db.Where("name = ?", "Docs").First(&docs).Error; err != nil {
		t.Fatalf("load docs: %v", err)
	}

	if docs.ParentID == nil || *docs.ParentID != result.QuarantineFolderID {
		t.Errorf("top folder not under quarantine container: %+v", docs)
	}

	var reports model.Folder
	if err := db.Where("name = ?", "Reports").First(&reports).Error; err != nil {
		t.Fatalf("load reports: %v", err)
	}

	if reports.ParentID == nil || *reports.ParentID != docs.ID {
		t.Errorf("folder hierarchy broken: %+v", reports)
	}

	// 成员保留账号但脱离租户
	var member model.User
	if err := db.Where("email = ?", "user@acme.io").First(&member).Error; err != nil {
		t.Fatalf("load member: %v", err)
	}

	if member.TenantID != nil || member.OriginalTenantID == nil || *member.OriginalTenantID != acme.ID {
		t.Errorf("member not detached correctly: %+v", member)
	}

	// 管理员按默认策略删除
	var adminCount int64
	db.Model(&model.User{}).Where("email = ?", "admin@acme.io").Count(&adminCount)

	if adminCount != 0 {
		t.Error("admin account should be removed under delete policy")
	}

	// 旁观租户毫发无损
	var betaUsers, betaTasks int64
	db.Model(&model.User{}).Where("tenant_id = ?", beta.ID).Count(&betaUsers)
	db.Model(&model.Task{}).Where("tenant_id = ?", beta.ID).Count(&betaTasks)

	if betaUsers != 1 || betaTasks != 1 {
		t.Errorf("bystander tenant touched: users=%d tasks=%d", betaUsers, betaTasks)
	}

	// 二次删除幂等地报告不存在
	if _, err := svc.Delete(ctx, acme.ID, 99); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

// TestDeleteTenantAdminDetachPolicy 管理员策略为 detach 时保留为全局账号.
func TestDeleteTenantAdminDetachPolicy(t *testing.T) {
	ctx, db := newTestCtx(t)
	acme, _ := seedAcme(t, db)

	configs.GetConfig().Quarantine.AdminPolicy = configs.AdminPolicyDetach
	defer func() { configs.GetConfig().Quarantine.AdminPolicy = configs.AdminPolicyDelete }()

	svc := service.NewTenantService(ctx)

	result, err := svc.Delete(ctx, acme.ID, 99)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// 管理员并入 detach 计数，无删除
	if result.AdminsRemoved != 0 {
		t.Errorf("AdminsRemoved = %d, want 0", result.AdminsRemoved)
	}

	if result.UsersDetached != 3 {
		t.Errorf("UsersDetached = %d, want 3", result.UsersDetached)
	}

	var admin model.User
	if err := db.Where("email = ?", "admin@acme.io").First(&admin).Error; err != nil {
		t.Fatalf("admin should survive detach policy: %v", err)
	}

	if admin.TenantID != nil {
		t.Errorf("admin still owned: %+v", admin)
	}
}

// TestDeleteTenantNotFound 删除不存在的租户直接返回 ErrNotFound.
func TestDeleteTenantNotFound(t *testing.T) {
	ctx, _ := newTestCtx(t)

	svc := service.NewTenantService(ctx)
	if _, err := svc.Delete(ctx, 12345, 1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestDeleteTenantLockConflict 锁被占用时快速失败.
func TestDeleteTenantLockConflict(t *testing.T) {
	ctx, db := newTestCtx(t)
	acme, _ := seedAcme(t, db)

	// 预占互斥锁模拟另一操作员正在删除
	mgrKV := serviceKV(t, ctx)

	ok, err := mgrKV.SetNX(ctx, lockKey(acme.ID), []byte("someone-else"), 0)
	if err != nil || !ok {
		t.Fatalf("pre-acquire lock: ok=%v err=%v", ok, err)
	}

	svc := service.NewTenantService(ctx)
	if _, err := svc.Delete(ctx, acme.ID, 99); !errors.Is(err, service.ErrDeletionInProgress) {
		t.Errorf("expected ErrDeletionInProgress, got %v", err)
	}

	// 释放后可正常删除
	if err := mgrKV.Delete(ctx, lockKey(acme.ID)); err != nil {
		t.Fatalf("release lock: %v", err)
	}

	if _, err := svc.Delete(ctx, acme.ID, 99); err != nil {
		t.Errorf("Delete after release: %v", err)
	}
}
