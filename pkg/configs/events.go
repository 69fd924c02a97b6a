package configs

import "github.com/spf13/viper"

// EventsConfig 控制审计事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled bool               `mapstructure:"enabled"` // 总开关
	Tenant  TenantEventsConfig `mapstructure:"tenant"`
	Grant   GrantEventsConfig  `mapstructure:"grant"`
}

// TenantEventsConfig 租户生命周期领域的事件开关。
type TenantEventsConfig struct {
	Deleted           bool `mapstructure:"deleted"`            // 租户删除完成
	DeleteFailed      bool `mapstructure:"delete_failed"`      // 租户删除回滚
	QuarantineCreated bool `mapstructure:"quarantine_created"` // 隔离容器创建
	UsersDetached     bool `mapstructure:"users_detached"`     // 用户批量脱离
	LoginDenied       bool `mapstructure:"login_denied"`       // 登录被拒
}

// GrantEventsConfig 跨租户授权领域的事件开关。
type GrantEventsConfig struct {
	Granted bool `mapstructure:"granted"`
	Revoked bool `mapstructure:"revoked"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 总开关：默认启用事件系统
	v.SetDefault("events.enabled", true)

	// 租户领域的事件：删除相关的默认全开，是审计追踪的主体
	v.SetDefault("events.tenant.deleted", true)
	v.SetDefault("events.tenant.delete_failed", true)
	v.SetDefault("events.tenant.quarantine_created", true)
	v.SetDefault("events.tenant.users_detached", true)

	// 登录拒绝事件量可能很大，默认关闭
	v.SetDefault("events.tenant.login_denied", false)

	// 授权事件：默认开启
	v.SetDefault("events.grant.granted", true)
	v.SetDefault("events.grant.revoked", true)
}
