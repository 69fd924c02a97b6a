// Package queue 定义消息主题常量与通配模式，供发布/订阅使用.
package queue

// 主题命名规范：tv.<域>.<动作>[.<状态>]，尽量稳定且向后兼容.
// 域：tenant(租户生命周期)、grant(跨租户授权)、quarantine(隔离区)
// 状态：完成(ed)、失败(failed)

const (
	// 租户生命周期领域.
	TopicTenantDeleted      = "tv.tenant.deleted"        // 租户删除事务提交完成（含各项归档计数）
	TopicTenantDeleteFailed = "tv.tenant.delete.failed"  // 租户删除事务回滚
	TopicTenantSuspended    = "tv.tenant.suspended"      // 租户被暂停（登录即刻失效）
	TopicUsersDetached      = "tv.tenant.users.detached" // 非管理员用户批量脱离租户
	TopicLoginDenied        = "tv.tenant.login.denied"   // 登录被网关拒绝（租户缺失/非激活/待重分配）

	// 隔离区领域.
	TopicQuarantineCreated = "tv.quarantine.created" // 删除事务中创建了租户隔离容器

	// 跨租户授权领域.
	TopicGrantGranted = "tv.grant.granted" // 管理员获得额外租户可见性
	TopicGrantRevoked = "tv.grant.revoked" // 授权被回收
)

// 主题分组，用于批量订阅或权限控制.
var (
	// 租户生命周期相关主题集合.
	TenantTopics = []string{
		TopicTenantDeleted, TopicTenantDeleteFailed,
		TopicTenantSuspended, TopicUsersDetached, TopicLoginDenied,
		TopicQuarantineCreated,
	}

	// 授权相关主题集合.
	GrantTopics = []string{
		TopicGrantGranted, TopicGrantRevoked,
	}
)
