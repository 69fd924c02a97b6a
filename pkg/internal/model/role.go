package model

import "strings"

// Role 角色闭合枚举，按权限从低到高排序.
// 数据库中以字符串存储，比较权限时使用 Level().
type Role string

const (
	RoleUser       Role = "user"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Level 返回角色的权限等级，数值越大权限越高.
func (r Role) Level() int {
	switch r {
	case RoleSuperAdmin:
		return 4
	case RoleAdmin:
		return 3
	case RoleManager:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

// Valid 判断角色是否属于闭合集合.
func (r Role) Valid() bool {
	return r.Level() > 0
}

// Administrative 管理类角色（admin/super_admin）允许 tenant_id 为空（全局账号）.
func (r Role) Administrative() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// String 实现 fmt.Stringer.
func (r Role) String() string { return string(r) }

// ParseRole 从字符串解析角色，未知值降级为 user.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "super_admin", "superadmin":
		return RoleSuperAdmin
	case "admin":
		return RoleAdmin
	case "manager":
		return RoleManager
	default:
		return RoleUser
	}
}

// NonAdministrativeRoles 被租户删除保留（detach）的角色集合.
var NonAdministrativeRoles = []Role{RoleUser, RoleManager}
