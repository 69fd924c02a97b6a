package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/internal/handle"
)

// RegisterAuthRoutes 注册登录门禁相关路由.
func RegisterAuthRoutes(g *gin.RouterGroup) {
	g.GET("/auth/can-login/:id", handle.CanLogin)
}
