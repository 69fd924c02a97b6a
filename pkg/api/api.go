// Package api 定义API接口，将各业务路由组装配到 gin 引擎.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/internal/router"
)

// RegisterGroup 将全部业务路由注册到传入的 gin 引擎的 /api/v1 分组.
func RegisterGroup(e *gin.Engine) *gin.Engine {
	v1 := e.Group("/api/v1")
	{
		router.RegisterTenantsRoutes(v1)
		router.RegisterAccessRoutes(v1)
		router.RegisterQuarantineRoutes(v1)
		router.RegisterAuthRoutes(v1)
		router.RegisterHealthCheckRoute(v1)
		router.RegisterSchedulerRoutes(v1)
	}

	return e
}
