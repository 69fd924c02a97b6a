package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/context"
	"github.com/yeisme/tenantvault/pkg/internal/storage"
)

// StorageMiddleware 把 storage manager 注入请求上下文，
// 服务层经由 pkg/context 取用数据库与 KV 客户端.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
