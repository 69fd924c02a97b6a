package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/internal/handle"
	"github.com/yeisme/tenantvault/pkg/internal/model"
	"github.com/yeisme/tenantvault/pkg/middleware"
)

// RegisterSchedulerRoutes 注册调度器相关路由，仅 super_admin 可操作.
func RegisterSchedulerRoutes(g *gin.RouterGroup) {
	schedRoutes := g.Group("/scheduler", middleware.RequireMinRole(model.RoleSuperAdmin))
	{
		schedRoutes.GET("/jobs", handle.SchedulerJobs)
		schedRoutes.POST("/jobs/stop", handle.SchedulerStopJobs)
		schedRoutes.DELETE("/jobs/:id", handle.SchedulerRemoveJob)
		schedRoutes.GET("/queue/waiting", handle.SchedulerQueueWaiting)
	}
}
