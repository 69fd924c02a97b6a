// Package handle 提供请求处理器的实现，用于处理HTTP请求.
package handle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/internal/service"
	"github.com/yeisme/tenantvault/pkg/internal/store"
	"github.com/yeisme/tenantvault/pkg/internal/types"
	"github.com/yeisme/tenantvault/pkg/middleware"
)

func DefaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"message": "Not Implemented"})
}

// abortWithError 把存储层错误分类翻译成 HTTP 状态码.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrConstraintViolation),
		errors.Is(err, service.ErrDeletionInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrPartialState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrTransient):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrObjectStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// idParam 解析路径上的数值 id.
func idParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})

		return 0, false
	}

	return uint(v), true
}

// checkPrincipal 取出认证中间件装载的主体，缺失时返回 401.
func checkPrincipal(c *gin.Context) (*types.Principal, bool) {
	p := middleware.GetPrincipal(c)
	if p == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})

		return nil, false
	}

	return p, true
}
