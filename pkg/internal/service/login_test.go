package service_test

import (
	"errors"
	"testing"

	"github.com/yeisme/tenantvault/pkg/internal/model"
	"github.com/yeisme/tenantvault/pkg/internal/service"
	"github.com/yeisme/tenantvault/pkg/internal/store"
	"github.com/yeisme/tenantvault/pkg/internal/types"
)

// TestCanLogin 登录门禁矩阵：角色、租户归属与租户状态的组合.
func TestCanLogin(t *testing.T) {
	ctx, db := newTestCtx(t)

	active := model.Tenant{Name: "Active", Status: model.TenantActive}
	suspended := model.Tenant{Name: "Suspended", Status: model.TenantSuspended}
	doomed := model.Tenant{Name: "Doomed", Status: model.TenantActive}

	for _, tn := range []*model.Tenant{&active, &suspended, &doomed} {
		if err := db.Create(tn).Error; err != nil {
			t.Fatalf("seed tenant: %v", err)
		}
	}

	users := []model.User{
		{Email: "ok@x.io", Role: model.RoleUser, TenantID: &active.ID},
		{Email: "susp@x.io", Role: model.RoleUser, TenantID: &suspended.ID},
		{Email: "gone@x.io", Role: model.RoleUser, TenantID: &doomed.ID},
		{Email: "wait@x.io", Role: model.RoleUser, OriginalTenantID: uptr(77)},
		{Email: "admin@x.io", Role: model.RoleAdmin},
		{Email: "root@x.io", Role: model.RoleSuperAdmin},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	// Doomed 租户软删除，等同不存在
	if err := db.Delete(&model.Tenant{}, doomed.ID).Error; err != nil {
		t.Fatalf("delete tenant: %v", err)
	}

	svc := service.NewAuthService(ctx)

	cases := []struct {
		email   string
		allowed bool
		reason  string
	}{
		{"ok@x.io", true, types.LoginReasonOK},
		{"susp@x.io", false, types.LoginReasonTenantNotActive},
		{"gone@x.io", false, types.LoginReasonTenantGone},
		{"wait@x.io", false, types.LoginReasonAwaitingReassign},
		// 管理类角色无租户也永远放行
		{"admin@x.io", true, types.LoginReasonOK},
		{"root@x.io", true, types.LoginReasonOK},
	}

	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			var u model.User
			if err := db.Where("email = ?", tc.email).First(&u).Error; err != nil {
				t.Fatalf("load user: %v", err)
			}

			d, err := svc.CanLogin(ctx, u.ID)
			if err != nil {
				t.Fatalf("CanLogin: %v", err)
			}

			if d.Allowed != tc.allowed || d.Reason != tc.reason {
				t.Errorf("decision = %+v, want allowed=%v reason=%q", d, tc.allowed, tc.reason)
			}
		})
	}
}

// TestCanLoginUnknownUser 未知用户返回存储层错误而非拒绝判定.
func TestCanLoginUnknownUser(t *testing.T) {
	ctx, _ := newTestCtx(t)

	svc := service.NewAuthService(ctx)
	if _, err := svc.CanLogin(ctx, 424242); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
