package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/internal/handle"
)

// RegisterAccessRoutes 注册可见范围查询相关路由.
func RegisterAccessRoutes(g *gin.RouterGroup) {
	g.GET("/folders", handle.ListFolders)
	g.GET("/users", handle.ListUsers)

	fileRoutes := g.Group("/files")
	{
		fileRoutes.GET("", handle.ListFiles)
		// 获取文件访问 URL (生成预签名 URL)
		fileRoutes.GET("/:id/url", handle.GetFileURL)
	}
}
