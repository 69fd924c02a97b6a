package service_test

import (
	"errors"
	"testing"

	"github.com/yeisme/tenantvault/pkg/internal/model"
	"github.com/yeisme/tenantvault/pkg/internal/service"
	"github.com/yeisme/tenantvault/pkg/internal/store"
	"github.com/yeisme/tenantvault/pkg/internal/types"
	"gorm.io/gorm"
)

// seedVisibility 构造两租户 + 一批隔离行的可见性测试数据.
// 返回的文件名到租户映射：t1.txt → 租户1，t2.txt → 租户2，orphan.txt → 隔离行.
func seedVisibility(t *testing.T, db *gorm.DB) (t1, t2 model.Tenant) {
	t.Helper()

	t1 = model.Tenant{Name: "One", Status: model.TenantActive}
	t2 = model.Tenant{Name: "Two", Status: model.TenantActive}

	for _, tn := range []*model.Tenant{&t1, &t2} {
		if err := db.Create(tn).Error; err != nil {
			t.Fatalf("seed tenant: %v", err)
		}
	}

	files := []model.File{
		{Name: "t1.txt", OwnerID: 1, TenantID: &t1.ID},
		{Name: "t2.txt", OwnerID: 1, TenantID: &t2.ID},
		{Name: "orphan.txt", OwnerID: 1, OriginalTenantID: uptr(77)},
	}
	for i := range files {
		if err := db.Create(&files[i]).Error; err != nil {
			t.Fatalf("seed file: %v", err)
		}
	}

	return t1, t2
}

// principal 快捷构造主体.
func principal(userID uint, role model.Role, home *uint, granted ...uint) *types.Principal {
	return &types.Principal{UserID: userID, Role: role, HomeTenantID: home, GrantedTenantIDs: granted}
}

// TestVisibleFilesByRole 各角色的可见文件矩阵.
func TestVisibleFilesByRole(t *testing.T) {
	ctx, db := newTestCtx(t)
	t1, t2 := seedVisibility(t, db)

	svc := service.NewAccessService(ctx)

	cases := []struct {
		name string
		p    *types.Principal
		want map[string]bool
	}{
		{
			name: "super_admin sees everything",
			p:    principal(1, model.RoleSuperAdmin, nil),
			want: map[string]bool{"t1.txt": true, "t2.txt": true, "orphan.txt": true},
		},
		{
			name: "admin sees unowned and home",
			p:    principal(2, model.RoleAdmin, &t1.ID),
			want: map[string]bool{"t1.txt": true, "orphan.txt": true},
		},
		{
			name: "admin grant extends visibility",
			p:    principal(3, model.RoleAdmin, &t1.ID, t2.ID),
			want: map[string]bool{"t1.txt": true, "t2.txt": true, "orphan.txt": true},
		},
		{
			name: "user sees home tenant only",
			p:    principal(4, model.RoleUser, &t2.ID),
			want: map[string]bool{"t2.txt": true},
		},
		{
			name: "detached user sees nothing",
			p:    principal(5, model.RoleUser, nil),
			want: map[string]bool{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := svc.VisibleFiles(ctx, tc.p)
			if err != nil {
				t.Fatalf("VisibleFiles: %v", err)
			}

			if resp.Total != len(tc.want) {
				t.Errorf("total = %d, want %d", resp.Total, len(tc.want))
			}

			for _, f := range resp.Files {
				if !tc.want[f.Name] {
					t.Errorf("unexpected visible file %s", f.Name)
				}
			}
		})
	}
}

// TestResolvePrincipal 授权集只对 admin 装载.
func TestResolvePrincipal(t *testing.T) {
	ctx, db := newTestCtx(t)
	t1, t2 := seedVisibility(t, db)

	admin := model.User{Email: "a@one.io", Role: model.RoleAdmin, TenantID: &t1.ID}
	manager := model.User{Email: "m@one.io", Role: model.RoleManager, TenantID: &t1.ID}

	for _, u := range []*model.User{&admin, &manager} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	for _, uid := range []uint{admin.ID, manager.ID} {
		if err := db.Create(&model.AccessGrant{UserID: uid, TenantID: t2.ID, GrantedBy: 1}).Error; err != nil {
			t.Fatalf("seed grant: %v", err)
		}
	}

	svc := service.NewAccessService(ctx)

	p, err := svc.ResolvePrincipal(ctx, admin.ID)
	if err != nil {
		t.Fatalf("ResolvePrincipal(admin): %v", err)
	}

	if len(p.GrantedTenantIDs) != 1 || p.GrantedTenantIDs[0] != t2.ID {
		t.Errorf("admin granted tenants = %v, want [%d]", p.GrantedTenantIDs, t2.ID)
	}

	// 授权行存在但 manager 角色不装载
	p, err = svc.ResolvePrincipal(ctx, manager.ID)
	if err != nil {
		t.Fatalf("ResolvePrincipal(manager): %v", err)
	}

	if len(p.GrantedTenantIDs) != 0 {
		t.Errorf("manager should not load grants, got %v", p.GrantedTenantIDs)
	}

	if _, err := svc.ResolvePrincipal(ctx, 9999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown user, got %v", err)
	}
}

// TestFileDownloadURLHidesInvisible 不可见文件与不存在同语义.
func TestFileDownloadURLHidesInvisible(t *testing.T) {
	ctx, db := newTestCtx(t)
	_, t2 := seedVisibility(t, db)

	var f model.File
	if err := db.Where("name = ?", "t2.txt").First(&f).Error; err != nil {
		t.Fatalf("load file: %v", err)
	}

	svc := service.NewAccessService(ctx)

	// 其它租户的用户拿不到存在性信息
	outsider := principal(5, model.RoleUser, uptr(999))
	if _, err := svc.FileDownloadURL(ctx, outsider, f.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for invisible file, got %v", err)
	}

	// 可见但对象存储不可用
	member := principal(6, model.RoleUser, &t2.ID)
	if _, err := svc.FileDownloadURL(ctx, member, f.ID); !errors.Is(err, service.ErrObjectStoreUnavailable) {
		t.Errorf("expected ErrObjectStoreUnavailable, got %v", err)
	}
}
