package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/internal/service"
)

// CanLogin 判定用户当前能否登录.
//
//	@Summary		登录门禁判定
//	@Description	判定用户能否登录：管理类角色始终放行；普通用户租户为空时提示等待重分配，租户已删除或停用时拒绝
//	@Tags			认证
//	@Produce		json
//	@Param			id	path		int					true	"用户ID"
//	@Success		200	{object}	types.LoginDecision	"判定结果"
//	@Failure		404	{object}	map[string]string	"用户不存在"
//	@Router			/api/v1/auth/can-login/{id} [get]
func CanLogin(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	svc := service.NewAuthService(c.Request.Context())

	decision, err := svc.CanLogin(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, decision)
}
