package configs

import "github.com/spf13/viper"

// AuthConfig 控制身份装载：凭证校验在上游网关完成，服务端只信任网关注入的 X-User-ID。
type AuthConfig struct {
	Enabled       bool     `mapstructure:"enabled"`         // 开启身份装载
	SkipPaths     []string `mapstructure:"skip_paths"`      // 跳过认证的路径前缀（如 /metrics、/api/v1/health）
	DevAllowQuery bool     `mapstructure:"dev_allow_query"` // 开发模式允许用 ?user= 便于本地调试
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.dev_allow_query", false)
	v.SetDefault("auth.skip_paths", []string{
		"/metrics",
		"/debug/pprof",
		"/api/v1/health",
		"/swagger",
	})
}
