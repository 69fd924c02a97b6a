package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/internal/handle"
	"github.com/yeisme/tenantvault/pkg/internal/model"
	"github.com/yeisme/tenantvault/pkg/middleware"
)

// RegisterTenantsRoutes 注册租户管理相关路由.
func RegisterTenantsRoutes(g *gin.RouterGroup) {
	tenantRoutes := g.Group("/tenants")
	{
		// 查询租户
		tenantRoutes.GET("/:id", handle.GetTenant)
		// 删除租户（含隔离归档），admin 及以上
		tenantRoutes.DELETE("/:id", middleware.RequireMinRole(model.RoleAdmin), handle.DeleteTenant)

		// 跨租户授权管理，仅 super_admin
		grantGroup := tenantRoutes.Group("/:id/grants", middleware.RequireMinRole(model.RoleSuperAdmin))
		{
			grantGroup.POST("", handle.CreateGrant)
			grantGroup.DELETE("/:userID", handle.DeleteGrant)
		}
	}
}
