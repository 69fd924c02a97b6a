package service

import (
	"context"
	"errors"

	ctxPkg "github.com/yeisme/tenantvault/pkg/context"
	"github.com/yeisme/tenantvault/pkg/internal/storage/db"
	"github.com/yeisme/tenantvault/pkg/internal/store"
)

// ErrObjectStoreUnavailable 对象存储未配置或初始化失败，下载链接不可用.
var ErrObjectStoreUnavailable = errors.New("object store unavailable")

// QuarantineService 隔离区浏览（只读）.
type QuarantineService struct {
	dbClient *db.Client
}

func NewQuarantineService(c context.Context) *QuarantineService {
	return &QuarantineService{dbClient: ctxPkg.GetDBClient(c)}
}

// List 列出全部隔离容器及各自的隔离行数.
func (q *QuarantineService) List(ctx context.Context) ([]store.QuarantineContainer, error) {
	return store.New(q.dbClient.GetDB()).ListQuarantineContainers(ctx)
}
