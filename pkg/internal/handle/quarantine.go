package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/internal/service"
	"github.com/yeisme/tenantvault/pkg/log"
)

// ListQuarantine 列出隔离区内的租户归档容器.
//
//	@Summary		列出隔离区容器
//	@Description	列出隔离区根目录下的所有租户归档容器及各自的目录/文件数量
//	@Tags			隔离区
//	@Produce		json
//	@Success		200	{array}		store.QuarantineContainer	"归档容器列表"
//	@Failure		401	{object}	map[string]string			"未认证"
//	@Router			/api/v1/quarantine [get]
func ListQuarantine(c *gin.Context) {
	svc := service.NewQuarantineService(c.Request.Context())

	containers, err := svc.List(c.Request.Context())
	if err != nil {
		log.Logger().Error().Err(err).Msg("failed to list quarantine containers")
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, containers)
}
