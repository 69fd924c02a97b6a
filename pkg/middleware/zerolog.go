package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/log"
)

// GinLoggerMiddleware 使用 zerolog 记录请求日志；5xx 记为 Error，4xx 记为 Warn.
// 健康检查路径不记录，避免探活刷屏.
func GinLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		if strings.HasPrefix(path, "/api/v1/health/") {
			return
		}

		status := c.Writer.Status()

		logger := log.Logger()

		var event = logger.Info()

		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		}

		event = event.
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("client_ip", c.ClientIP())

		if raw := c.Request.URL.RawQuery; raw != "" {
			event = event.Str("query", raw)
		}

		// 已认证请求附带主体身份，便于按用户追查操作
		if p := GetPrincipal(c); p != nil {
			event = event.Uint("user_id", p.UserID).Str("role", string(p.Role))
		}

		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.String())
		}

		event.Msg("HTTP request")
	}
}
