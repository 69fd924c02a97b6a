package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/configs"
)

// CORSMiddleware CORS 中间件；调试模式放开所有来源，生产按默认配置.
func CORSMiddleware(cfg configs.ServerConfig) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowHeaders = append(config.AllowHeaders, "X-User-ID")

	if cfg.Debug {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = []string{"*"}
	}

	return cors.New(config)
}
