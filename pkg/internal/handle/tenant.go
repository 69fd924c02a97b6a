package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/internal/service"
	"github.com/yeisme/tenantvault/pkg/log"
)

// DeleteTenant 处理租户删除请求：隔离归档目录与文件、解绑成员、清理授权后软删除租户.
//
//	@Summary		删除租户
//	@Description	在单个事务内完成租户的安全删除：目录与文件迁入隔离区、成员解绑等待重分配、授权清理，全部成功后软删除租户本身
//	@Tags			租户管理
//	@Produce		json
//	@Param			id	path		int							true	"租户ID"
//	@Success		200	{object}	types.DeleteTenantResult	"删除结果汇总"
//	@Failure		400	{object}	map[string]string			"请求参数错误"
//	@Failure		404	{object}	map[string]string			"租户不存在或已删除"
//	@Failure		409	{object}	map[string]string			"删除进行中或状态冲突"
//	@Failure		503	{object}	map[string]string			"存储暂时不可用"
//	@Router			/api/v1/tenants/{id} [delete]
func DeleteTenant(c *gin.Context) {
	l := log.Logger()

	tenantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	p, ok := checkPrincipal(c)
	if !ok {
		return
	}

	svc := service.NewTenantService(c.Request.Context())

	result, err := svc.Delete(c.Request.Context(), tenantID, p.UserID)
	if err != nil {
		l.Warn().Err(err).Uint("tenant_id", tenantID).Msg("tenant deletion failed")
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTenant 查询单个租户.
//
//	@Summary		查询租户
//	@Description	按 ID 查询租户信息
//	@Tags			租户管理
//	@Produce		json
//	@Param			id	path		int					true	"租户ID"
//	@Success		200	{object}	model.Tenant		"租户信息"
//	@Failure		404	{object}	map[string]string	"租户不存在"
//	@Router			/api/v1/tenants/{id} [get]
func GetTenant(c *gin.Context) {
	tenantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	svc := service.NewTenantService(c.Request.Context())

	tenant, err := svc.Get(c.Request.Context(), tenantID)
	if err != nil {
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, tenant)
}
