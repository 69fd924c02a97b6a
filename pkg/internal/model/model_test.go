package model_test

import (
	"testing"

	"github.com/yeisme/tenantvault/pkg/internal/model"
)

func uptr(v uint) *uint { return &v }

// TestRoleLevelOrdering 角色等级严格有序.
func TestRoleLevelOrdering(t *testing.T) {
	ordered := []model.Role{model.RoleUser, model.RoleManager, model.RoleAdmin, model.RoleSuperAdmin}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Level() <= ordered[i-1].Level() {
			t.Errorf("%s should outrank %s", ordered[i], ordered[i-1])
		}
	}

	if model.Role("intern").Level() != 0 {
		t.Error("unknown role should have level 0")
	}
}

// TestParseRole 未知角色降级为 user.
func TestParseRole(t *testing.T) {
	if got := model.ParseRole("super_admin"); got != model.RoleSuperAdmin {
		t.Errorf("ParseRole(super_admin) = %s", got)
	}

	if got := model.ParseRole("whatever"); got != model.RoleUser {
		t.Errorf("ParseRole(whatever) = %s, want user", got)
	}
}

// TestOwnershipState 所有权状态由两个租户字段推导.
func TestOwnershipState(t *testing.T) {
	cases := []struct {
		name string
		f    model.Folder
		want string
	}{
		{"owned", model.Folder{TenantID: uptr(1)}, "active"},
		{"quarantined", model.Folder{OriginalTenantID: uptr(1)}, "quarantined"},
		{"global", model.Folder{}, "global"},
	}

	for _, tc := range cases {
		if got := tc.f.State().String(); got != tc.want {
			t.Errorf("%s: State() = %s, want %s", tc.name, got, tc.want)
		}
	}
}

// TestUserDetachedState 用户脱离租户后处于 detached 而非 quarantined.
func TestUserDetachedState(t *testing.T) {
	u := model.User{Role: model.RoleUser, OriginalTenantID: uptr(42)}
	if got := u.State().String(); got != "detached" {
		t.Errorf("State() = %s, want detached", got)
	}

	owned := model.User{Role: model.RoleUser, TenantID: uptr(42)}
	if got := owned.State().String(); got != "active" {
		t.Errorf("State() = %s, want active", got)
	}
}
