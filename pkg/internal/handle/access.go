package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/tenantvault/pkg/internal/service"
	"github.com/yeisme/tenantvault/pkg/log"
)

// ListFolders 按主体可见范围列出目录.
//
//	@Summary		列出可见目录
//	@Description	按当前主体的角色与授权解析可见范围后列出目录，super_admin 可见全部，admin 额外可见隔离区
//	@Tags			访问解析
//	@Produce		json
//	@Success		200	{object}	types.FolderListResponse	"目录列表"
//	@Failure		401	{object}	map[string]string			"未认证"
//	@Router			/api/v1/folders [get]
func ListFolders(c *gin.Context) {
	p, ok := checkPrincipal(c)
	if !ok {
		return
	}

	svc := service.NewAccessService(c.Request.Context())

	resp, err := svc.VisibleFolders(c.Request.Context(), p)
	if err != nil {
		log.Logger().Error().Err(err).Uint("user_id", p.UserID).Msg("failed to list folders")
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListFiles 按主体可见范围列出文件.
//
//	@Summary		列出可见文件
//	@Description	按当前主体的角色与授权解析可见范围后列出文件
//	@Tags			访问解析
//	@Produce		json
//	@Success		200	{object}	types.FileListResponse	"文件列表"
//	@Failure		401	{object}	map[string]string		"未认证"
//	@Router			/api/v1/files [get]
func ListFiles(c *gin.Context) {
	p, ok := checkPrincipal(c)
	if !ok {
		return
	}

	svc := service.NewAccessService(c.Request.Context())

	resp, err := svc.VisibleFiles(c.Request.Context(), p)
	if err != nil {
		log.Logger().Error().Err(err).Uint("user_id", p.UserID).Msg("failed to list files")
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListUsers 按主体可见范围列出用户.
//
//	@Summary		列出可见用户
//	@Description	按当前主体的角色与授权解析可见范围后列出用户，admin 额外可见等待重分配的无租户用户
//	@Tags			访问解析
//	@Produce		json
//	@Success		200	{object}	types.UserListResponse	"用户列表"
//	@Failure		401	{object}	map[string]string		"未认证"
//	@Router			/api/v1/users [get]
func ListUsers(c *gin.Context) {
	p, ok := checkPrincipal(c)
	if !ok {
		return
	}

	svc := service.NewAccessService(c.Request.Context())

	resp, err := svc.VisibleUsers(c.Request.Context(), p)
	if err != nil {
		log.Logger().Error().Err(err).Uint("user_id", p.UserID).Msg("failed to list users")
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetFileURL 为可见文件签发临时下载地址.
//
//	@Summary		获取文件下载URL
//	@Description	校验文件对当前主体可见后，通过对象存储签发临时下载地址；不可见文件返回 404 避免泄露存在性
//	@Tags			访问解析
//	@Produce		json
//	@Param			id	path		int						true	"文件ID"
//	@Success		200	{object}	types.FileURLResponse	"预签名下载地址"
//	@Failure		404	{object}	map[string]string		"文件不存在或不可见"
//	@Failure		503	{object}	map[string]string		"对象存储不可用"
//	@Router			/api/v1/files/{id}/url [get]
func GetFileURL(c *gin.Context) {
	fileID, ok := idParam(c, "id")
	if !ok {
		return
	}

	p, ok := checkPrincipal(c)
	if !ok {
		return
	}

	svc := service.NewAccessService(c.Request.Context())

	resp, err := svc.FileDownloadURL(c.Request.Context(), p, fileID)
	if err != nil {
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}
