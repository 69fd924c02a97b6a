// Package middleware 提供 HTTP 中间件：身份装载、角色门禁、限流、追踪、
// 以及 storage/scheduler 等依赖的请求上下文注入。
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/tenantvault/pkg/context"
	"github.com/yeisme/tenantvault/pkg/internal/model"
	"github.com/yeisme/tenantvault/pkg/internal/types"
)

// GetPrincipal 从 gin.Context 获取当前请求主体，未认证时返回 nil。
func GetPrincipal(c *gin.Context) *types.Principal {
	if v, ok := c.Get(PrincipalKey); ok {
		if p, ok2 := v.(*types.Principal); ok2 {
			return p
		}
	}
	// 回退到 request context
	return ctxPkg.GetPrincipal(c.Request.Context())
}

// RequireMinRole 要求主体至少具备指定角色等级，不满足则返回 403。
// 等级比较用 Role.Level()，super_admin > admin > manager > user。
func RequireMinRole(minRole model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if p.Role.Level() < minRole.Level() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient role"})
			return
		}

		c.Next()
	}
}
