package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/configs"
	ctxPkg "github.com/yeisme/tenantvault/pkg/context"
	"github.com/yeisme/tenantvault/pkg/internal/service"
)

// PrincipalKey 已认证主体在 gin context 中的键.
const PrincipalKey = "principal"

// AuthMiddleware 基于上游网关注入的 X-User-ID 做统一身份装载。
// 凭证校验发生在网关，这里只把用户 id 换成完整主体（角色 + 租户归属 + 授权集），
// 每个请求都重新装载，授权与租户状态变化即刻生效。
//   - 支持通过配置跳过某些路径（如 /metrics, /api/v1/health）
//   - 开发模式可允许 query user 兜底（由 configs.auth.dev_allow_query 控制）.
func AuthMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !conf.Enabled || isSkippedPath(c.Request.URL.Path, conf.SkipPaths) {
			c.Next()
			return
		}

		raw := strings.TrimSpace(c.GetHeader("X-User-ID"))
		if raw == "" && conf.DevAllowQuery {
			raw = strings.TrimSpace(c.Query("user"))
		}

		userID, err := strconv.ParseUint(raw, 10, 64)
		if raw == "" || err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})

			return
		}

		principal, err := service.NewAccessService(c.Request.Context()).
			ResolvePrincipal(c.Request.Context(), uint(userID))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown principal"})

			return
		}

		c.Set(PrincipalKey, principal)
		c.Request = c.Request.WithContext(ctxPkg.WithPrincipal(c.Request.Context(), principal))

		c.Next()
	}
}

func isSkippedPath(path string, skips []string) bool {
	if path == "" || len(skips) == 0 {
		return false
	}

	for _, p := range skips {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}
