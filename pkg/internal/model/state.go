package model

// OwnershipState 所有权状态闭合枚举，由 tenant_id / original_tenant_id 组合推导.
type OwnershipState int

const (
	// StateActive 归属于存活租户.
	StateActive OwnershipState = iota + 1
	// StateDetached 用户被保留但脱离租户，等待重新分配.
	StateDetached
	// StateQuarantined 归属租户已删除，行被迁入隔离区.
	StateQuarantined
	// StateGlobal 全局对象，从未归属任何租户（super_admin 直接创建）.
	StateGlobal
)

// String 返回状态的字符串表示.
func (s OwnershipState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDetached:
		return "detached"
	case StateQuarantined:
		return "quarantined"
	case StateGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// ownershipState 根据 tenant_id / original_tenant_id 推导内容对象的状态.
func ownershipState(tenantID, originalTenantID *uint) OwnershipState {
	switch {
	case tenantID != nil:
		return StateActive
	case originalTenantID != nil:
		return StateQuarantined
	default:
		return StateGlobal
	}
}
