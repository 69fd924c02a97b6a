package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// AdminPolicyDelete 删除租户时硬删除管理员账号.
	AdminPolicyDelete = "delete"
	// AdminPolicyDetach 删除租户时将管理员与普通用户一样脱离并保留.
	AdminPolicyDetach = "detach"

	DefaultDeletionTimeout = 30 * time.Second // 删除事务超时
	DefaultDeletionLockTTL = time.Minute      // 删除互斥锁 TTL
	DefaultPresignExpiry   = 15 * time.Minute // 下载链接有效期
)

// QuarantineConfig 租户删除与隔离区行为配置.
type QuarantineConfig struct {
	DeletionTimeout time.Duration `mapstructure:"deletion_timeout"` // 整个删除事务的超时
	LockTTL         time.Duration `mapstructure:"lock_ttl"`         // 同一租户并发删除互斥锁的 TTL
	PurgeDependents bool          `mapstructure:"purge_dependents"` // 是否清除租户的任务、日程、消息等附属记录
	AdminPolicy     string        `mapstructure:"admin_policy"      rule:"oneof=delete detach"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`   // 隔离文件下载链接有效期
}

func (c *QuarantineConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("quarantine.deletion_timeout", DefaultDeletionTimeout)
	v.SetDefault("quarantine.lock_ttl", DefaultDeletionLockTTL)
	v.SetDefault("quarantine.purge_dependents", true)
	v.SetDefault("quarantine.admin_policy", AdminPolicyDelete)
	v.SetDefault("quarantine.presign_expiry", DefaultPresignExpiry)
}
