package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/internal/service"
	"github.com/yeisme/tenantvault/pkg/internal/types"
	"github.com/yeisme/tenantvault/pkg/log"
	"github.com/yeisme/tenantvault/pkg/rule"
)

// CreateGrant 为管理员授予跨租户访问权.
//
//	@Summary		授予跨租户访问
//	@Description	为 admin 角色用户授予对指定租户的访问权；目标用户必须是 admin，目标租户必须存在且未删除
//	@Tags			授权管理
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"租户ID"
//	@Param			grant	body		types.GrantRequest	true	"授权请求"
//	@Success		200		{object}	model.AccessGrant	"已创建或已存在的授权"
//	@Failure		400		{object}	map[string]string	"请求参数错误"
//	@Failure		404		{object}	map[string]string	"目标用户或租户不存在"
//	@Failure		409		{object}	map[string]string	"目标用户不是管理员"
//	@Router			/api/v1/tenants/{id}/grants [post]
func CreateGrant(c *gin.Context) {
	l := log.Logger()

	tenantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	p, ok := checkPrincipal(c)
	if !ok {
		return
	}

	var req types.GrantRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid grant request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := rule.ValidateStruct(&req); err != nil {
		l.Warn().Err(err).Msg("grant request validation failed")

		if fields := rule.Errors(err); fields != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}

		return
	}

	svc := service.NewGrantService(c.Request.Context())

	grant, err := svc.Grant(c.Request.Context(), req.UserID, tenantID, p.UserID)
	if err != nil {
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, grant)
}

// DeleteGrant 撤销跨租户访问权.
//
//	@Summary		撤销跨租户访问
//	@Description	撤销指定用户对指定租户的跨租户访问授权
//	@Tags			授权管理
//	@Produce		json
//	@Param			id		path		int					true	"租户ID"
//	@Param			userID	path		int					true	"用户ID"
//	@Success		200		{object}	map[string]string	"撤销成功"
//	@Failure		404		{object}	map[string]string	"授权不存在"
//	@Router			/api/v1/tenants/{id}/grants/{userID} [delete]
func DeleteGrant(c *gin.Context) {
	tenantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	userID, ok := idParam(c, "userID")
	if !ok {
		return
	}

	p, ok := checkPrincipal(c)
	if !ok {
		return
	}

	svc := service.NewGrantService(c.Request.Context())

	if err := svc.Revoke(c.Request.Context(), userID, tenantID, p.UserID); err != nil {
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "grant revoked"})
}
