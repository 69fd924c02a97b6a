package service_test

import (
	"errors"
	"testing"

	"github.com/yeisme/tenantvault/pkg/internal/model"
	"github.com/yeisme/tenantvault/pkg/internal/service"
	"github.com/yeisme/tenantvault/pkg/internal/store"
)

// TestGrantLifecycle 授予、重复授予与回收.
func TestGrantLifecycle(t *testing.T) {
	ctx, db := newTestCtx(t)

	tenant := model.Tenant{Name: "Target", Status: model.TenantActive}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}

	admin := model.User{Email: "a@x.io", Role: model.RoleAdmin}
	manager := model.User{Email: "m@x.io", Role: model.RoleManager}

	for _, u := range []*model.User{&admin, &manager} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	svc := service.NewGrantService(ctx)

	grant, err := svc.Grant(ctx, admin.ID, tenant.ID, 1)
	if err != nil {
		t.Fatalf("Grant: %v", err)
	}

	if grant.UserID != admin.ID || grant.TenantID != tenant.ID || grant.GrantedBy != 1 {
		t.Errorf("unexpected grant row: %+v", grant)
	}

	if _, err := svc.Grant(ctx, admin.ID, tenant.ID, 1); !errors.Is(err, store.ErrConstraintViolation) {
		t.Errorf("expected ErrConstraintViolation on duplicate, got %v", err)
	}

	// 非 admin 角色不可被授权
	if _, err := svc.Grant(ctx, manager.ID, tenant.ID, 1); !errors.Is(err, store.ErrConstraintViolation) {
		t.Errorf("expected ErrConstraintViolation for manager, got %v", err)
	}

	if err := svc.Revoke(ctx, admin.ID, tenant.ID, 1); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	if err := svc.Revoke(ctx, admin.ID, tenant.ID, 1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double revoke, got %v", err)
	}
}

// TestGrantDeadTenant 已删除租户不可再被授权.
func TestGrantDeadTenant(t *testing.T) {
	ctx, db := newTestCtx(t)

	tenant := model.Tenant{Name: "Dead", Status: model.TenantActive}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}

	if err := db.Delete(&model.Tenant{}, tenant.ID).Error; err != nil {
		t.Fatalf("delete tenant: %v", err)
	}

	admin := model.User{Email: "a@x.io", Role: model.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	svc := service.NewGrantService(ctx)
	if _, err := svc.Grant(ctx, admin.ID, tenant.ID, 1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for dead tenant, got %v", err)
	}
}
