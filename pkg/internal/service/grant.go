package service

import (
	"context"
	"fmt"

	"github.com/yeisme/tenantvault/pkg/configs"
	ctxPkg "github.com/yeisme/tenantvault/pkg/context"
	"github.com/yeisme/tenantvault/pkg/internal/model"
	"github.com/yeisme/tenantvault/pkg/internal/storage/db"
	"github.com/yeisme/tenantvault/pkg/internal/storage/mq"
	"github.com/yeisme/tenantvault/pkg/internal/store"
	nlog "github.com/yeisme/tenantvault/pkg/log"
	"github.com/yeisme/tenantvault/pkg/queue"
)

// GrantService 跨租户授权管理：给 admin 追加额外租户的可见性.
type GrantService struct {
	dbClient *db.Client
	mqClient *mq.Client
}

func NewGrantService(c context.Context) *GrantService {
	return &GrantService{
		dbClient: ctxPkg.GetDBClient(c),
		mqClient: ctxPkg.GetMQClient(c),
	}
}

// Grant 给用户授予目标租户的可见性.
// 仅 admin 角色可被授权（super_admin 全量可见，manager/user 不参与跨租户）；
// 目标租户必须存活. 重复授权返回 ErrConstraintViolation.
func (g *GrantService) Grant(ctx context.Context, userID, tenantID, grantedBy uint) (*model.AccessGrant, error) {
	st := store.New(g.dbClient.GetDB())

	user, err := st.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Role != model.RoleAdmin {
		return nil, fmt.Errorf("grants only apply to admin role, user %d is %s: %w",
			userID, user.Role, store.ErrConstraintViolation)
	}

	if _, err := st.FindTenant(ctx, tenantID); err != nil {
		return nil, err
	}

	grant, err := st.Grant(ctx, userID, tenantID, grantedBy)
	if err != nil {
		return nil, err
	}

	g.publishGrantChange(ctx, queue.TopicGrantGranted, userID, tenantID, grantedBy)

	return grant, nil
}

// Revoke 回收一条授权.
func (g *GrantService) Revoke(ctx context.Context, userID, tenantID, revokedBy uint) error {
	if err := store.New(g.dbClient.GetDB()).Revoke(ctx, userID, tenantID); err != nil {
		return err
	}

	g.publishGrantChange(ctx, queue.TopicGrantRevoked, userID, tenantID, revokedBy)

	return nil
}

func (g *GrantService) publishGrantChange(ctx context.Context, topic string, userID, tenantID, changedBy uint) {
	events := configs.GetConfig().Events
	if g.mqClient == nil || !events.Enabled {
		return
	}

	payload := queue.GrantChangedPayload{UserID: userID, TenantID: tenantID, ChangedBy: changedBy}

	var err error

	switch topic {
	case queue.TopicGrantGranted:
		if events.Grant.Granted {
			err = queue.PublishGrantGranted(ctx, g.mqClient, payload, queue.WithProducer("tenantvault"))
		}
	case queue.TopicGrantRevoked:
		if events.Grant.Revoked {
			err = queue.PublishGrantRevoked(ctx, g.mqClient, payload, queue.WithProducer("tenantvault"))
		}
	}

	if err != nil {
		nlog.Logger().Warn().Err(err).Str("topic", topic).Uint("user_id", userID).Msg("publish grant change")
	}
}
