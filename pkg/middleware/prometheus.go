package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/metrics"
)

// PrometheusMiddleware 记录每个请求的计数与耗时.
// endpoint 标签采用路由模板（如 /api/v1/tenants/:id），未匹配路由统一归为 unmatched.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		status := strconv.Itoa(c.Writer.Status())

		metrics.RequestCounter.WithLabelValues(method, endpoint, status).Inc()
		metrics.RequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}
