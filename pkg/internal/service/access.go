package service

import (
	"context"

	"github.com/yeisme/tenantvault/pkg/configs"
	ctxPkg "github.com/yeisme/tenantvault/pkg/context"
	"github.com/yeisme/tenantvault/pkg/internal/model"
	"github.com/yeisme/tenantvault/pkg/internal/storage/db"
	"github.com/yeisme/tenantvault/pkg/internal/storage/s3"
	"github.com/yeisme/tenantvault/pkg/internal/store"
	"github.com/yeisme/tenantvault/pkg/internal/types"
)

// AccessService 访问解析器：按主体角色计算可见集并执行只读查询.
// 纯读路径，不修改任何行；每个请求重新求值，依赖上游不做缓存.
type AccessService struct {
	dbClient *db.Client
	s3Client *s3.Client
}

func NewAccessService(c context.Context) *AccessService {
	return &AccessService{
		dbClient: ctxPkg.GetDBClient(c),
		s3Client: ctxPkg.GetS3Client(c),
	}
}

// ResolvePrincipal 从存储装载主体：角色、本租户与授权租户集.
func (a *AccessService) ResolvePrincipal(ctx context.Context, userID uint) (*types.Principal, error) {
	st := store.New(a.dbClient.GetDB())

	user, err := st.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &types.Principal{
		UserID:       user.ID,
		Role:         user.Role,
		HomeTenantID: user.TenantID,
	}

	// 授权集只对 admin 生效，其它角色查了也用不上
	if user.Role == model.RoleAdmin {
		if p.GrantedTenantIDs, err = st.GrantedTenantIDs(ctx, userID); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// scopeFor 把主体翻译成可见范围，按角色分支：
//   - super_admin：全量，包括隔离行
//   - admin：无主行（全局/隔离） + 本租户 + 授权租户
//   - manager/user：仅本租户；无租户时什么都看不见
func scopeFor(p *types.Principal) store.VisibilityScope {
	switch p.Role {
	case model.RoleSuperAdmin:
		return store.VisibilityScope{All: true}
	case model.RoleAdmin:
		return store.VisibilityScope{IncludeUnowned: true, TenantIDs: p.VisibleTenantIDs()}
	default:
		if p.HomeTenantID == nil {
			return store.VisibilityScope{}
		}

		return store.VisibilityScope{TenantIDs: []uint{*p.HomeTenantID}}
	}
}

// VisibleFolders 返回主体可见的文件夹.
func (a *AccessService) VisibleFolders(ctx context.Context, p *types.Principal) (types.FolderListResponse, error) {
	rows, err := store.New(a.dbClient.GetDB()).ListFolders(ctx, scopeFor(p))
	if err != nil {
		return types.FolderListResponse{}, err
	}

	out := make([]types.FolderView, 0, len(rows))
	for i := range rows {
		out = append(out, types.NewFolderView(&rows[i]))
	}

	return types.FolderListResponse{Total: len(out), Folders: out}, nil
}

// VisibleFiles 返回主体可见的文件.
func (a *AccessService) VisibleFiles(ctx context.Context, p *types.Principal) (types.FileListResponse, error) {
	rows, err := store.New(a.dbClient.GetDB()).ListFiles(ctx, scopeFor(p))
	if err != nil {
		return types.FileListResponse{}, err
	}

	out := make([]types.FileView, 0, len(rows))
	for i := range rows {
		out = append(out, types.NewFileView(&rows[i]))
	}

	return types.FileListResponse{Total: len(out), Files: out}, nil
}

// VisibleUsers 返回主体可见的用户.
func (a *AccessService) VisibleUsers(ctx context.Context, p *types.Principal) (types.UserListResponse, error) {
	rows, err := store.New(a.dbClient.GetDB()).ListUsers(ctx, scopeFor(p))
	if err != nil {
		return types.UserListResponse{}, err
	}

	out := make([]types.UserView, 0, len(rows))
	for i := range rows {
		out = append(out, types.NewUserView(&rows[i]))
	}

	return types.UserListResponse{Total: len(out), Users: out}, nil
}

// FileDownloadURL 对可见文件签发预签名下载链接.
// 文件内容在删除编排中从未被移动，隔离后的文件仍按原对象键下载.
func (a *AccessService) FileDownloadURL(ctx context.Context, p *types.Principal, fileID uint) (types.FileURLResponse, error) {
	st := store.New(a.dbClient.GetDB())

	f, err := st.FindFile(ctx, fileID)
	if err != nil {
		return types.FileURLResponse{}, err
	}

	if !fileVisible(p, f) {
		// 对不可见的文件与不存在同语义，避免泄露存在性
		return types.FileURLResponse{}, store.ErrNotFound
	}

	if a.s3Client == nil {
		return types.FileURLResponse{}, ErrObjectStoreUnavailable
	}

	expiry := configs.GetConfig().Quarantine.PresignExpiry

	url, err := a.s3Client.PresignedDownloadURL(ctx, f.Bucket, f.ObjectKey, expiry)
	if err != nil {
		return types.FileURLResponse{}, err
	}

	return types.FileURLResponse{
		FileID:    f.ID,
		URL:       url,
		ExpiresIn: int(expiry.Seconds()),
	}, nil
}

// fileVisible 单文件的可见性判定，与 scopeFor 的分支一致.
func fileVisible(p *types.Principal, f *model.File) bool {
	switch p.Role {
	case model.RoleSuperAdmin:
		return true
	case model.RoleAdmin:
		if f.TenantID == nil {
			return true
		}

		for _, id := range p.VisibleTenantIDs() {
			if id == *f.TenantID {
				return true
			}
		}

		return false
	default:
		return p.HomeTenantID != nil && f.TenantID != nil && *p.HomeTenantID == *f.TenantID
	}
}
