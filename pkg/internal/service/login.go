package service

import (
	"context"
	"errors"

	"github.com/yeisme/tenantvault/pkg/configs"
	ctxPkg "github.com/yeisme/tenantvault/pkg/context"
	"github.com/yeisme/tenantvault/pkg/internal/storage/db"
	"github.com/yeisme/tenantvault/pkg/internal/storage/mq"
	"github.com/yeisme/tenantvault/pkg/internal/store"
	"github.com/yeisme/tenantvault/pkg/internal/types"
	nlog "github.com/yeisme/tenantvault/pkg/log"
	"github.com/yeisme/tenantvault/pkg/metrics"
	"github.com/yeisme/tenantvault/pkg/queue"
)

// AuthService 登录门禁：凭证校验之后、会话建立之前的租户归属检查.
type AuthService struct {
	dbClient *db.Client
	mqClient *mq.Client
}

func NewAuthService(c context.Context) *AuthService {
	return &AuthService{
		dbClient: ctxPkg.GetDBClient(c),
		mqClient: ctxPkg.GetMQClient(c),
	}
}

// CanLogin 判定用户是否允许登录：
//   - 管理类角色永远放行，无租户时是全局账号
//   - 非管理角色无租户：拒绝，原因是"等待重新分配"而非"凭证错误"
//   - 有租户但租户已删除或非 active：拒绝
//
// 每次登录都重新求值，租户状态变化即刻生效.
func (a *AuthService) CanLogin(ctx context.Context, userID uint) (types.LoginDecision, error) {
	st := store.New(a.dbClient.GetDB())

	user, err := st.FindUser(ctx, userID)
	if err != nil {
		return types.LoginDecision{}, err
	}

	decision := types.LoginDecision{UserID: userID, Allowed: true, Reason: types.LoginReasonOK}

	if user.Role.Administrative() {
		return decision, nil
	}

	switch {
	case user.TenantID == nil:
		decision = types.LoginDecision{UserID: userID, Reason: types.LoginReasonAwaitingReassign}
	default:
		tenant, err := st.FindTenant(ctx, *user.TenantID)

		switch {
		case errors.Is(err, store.ErrNotFound):
			decision = types.LoginDecision{UserID: userID, Reason: types.LoginReasonTenantGone}
		case err != nil:
			return types.LoginDecision{}, err
		case !tenant.IsActive():
			decision = types.LoginDecision{UserID: userID, Reason: types.LoginReasonTenantNotActive}
		}
	}

	if !decision.Allowed {
		metrics.LoginDenials.WithLabelValues(decision.Reason).Inc()
		a.publishLoginDenied(ctx, decision)
	}

	return decision, nil
}

func (a *AuthService) publishLoginDenied(ctx context.Context, d types.LoginDecision) {
	events := configs.GetConfig().Events
	if a.mqClient == nil || !events.Enabled || !events.Tenant.LoginDenied {
		return
	}

	payload := queue.LoginDeniedPayload{UserID: d.UserID, Reason: d.Reason}
	if err := queue.PublishLoginDenied(ctx, a.mqClient, payload, queue.WithProducer("tenantvault")); err != nil {
		nlog.Logger().Warn().Err(err).Uint("user_id", d.UserID).Msg("publish login.denied")
	}
}
