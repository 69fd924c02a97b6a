package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/internal/handle"
	"github.com/yeisme/tenantvault/pkg/internal/model"
	"github.com/yeisme/tenantvault/pkg/middleware"
)

// RegisterQuarantineRoutes 注册隔离区查询路由，admin 及以上可见.
func RegisterQuarantineRoutes(g *gin.RouterGroup) {
	g.GET("/quarantine", middleware.RequireMinRole(model.RoleAdmin), handle.ListQuarantine)
}
