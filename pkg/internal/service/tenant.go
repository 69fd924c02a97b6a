package service

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid"
	"gorm.io/gorm"

	"github.com/yeisme/tenantvault/pkg/configs"
	ctxPkg "github.com/yeisme/tenantvault/pkg/context"
	"github.com/yeisme/tenantvault/pkg/internal/model"
	"github.com/yeisme/tenantvault/pkg/internal/storage/db"
	"github.com/yeisme/tenantvault/pkg/internal/storage/kv"
	"github.com/yeisme/tenantvault/pkg/internal/storage/mq"
	"github.com/yeisme/tenantvault/pkg/internal/store"
	"github.com/yeisme/tenantvault/pkg/internal/types"
	nlog "github.com/yeisme/tenantvault/pkg/log"
	"github.com/yeisme/tenantvault/pkg/metrics"
	"github.com/yeisme/tenantvault/pkg/queue"
)

// TenantService 租户生命周期服务，核心是安全删除的编排.
type TenantService struct {
	dbClient *db.Client
	kvClient *kv.Client
	mqClient *mq.Client
}

func NewTenantService(c context.Context) *TenantService {
	return &TenantService{
		dbClient: ctxPkg.GetDBClient(c),
		kvClient: ctxPkg.GetKVClient(c),
		mqClient: ctxPkg.GetMQClient(c),
	}
}

// ErrDeletionInProgress 同一租户的删除已在进行中.
var ErrDeletionInProgress = errors.New("tenant deletion already in progress")

// newOperationID 生成删除操作的审计 id.
func newOperationID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), crand.Reader).String()
}

// Delete 在单个事务内把租户安全下线：
//
//  1. 解析租户（软删除视为不存在，二次删除得到 ErrNotFound，幂等）
//  2. 确保隔离区根目录与该租户的隔离容器存在
//  3. 文件夹/文件脱离租户、打历史标记，文件夹子树根挂入容器
//  4. 非管理员用户脱离租户保留账号，管理员按策略删除或脱离
//  5. 清除跨租户授权与依附记录（任务、日程、消息、项目）
//  6. 校验租户名下归零，未归零返回 ErrPartialState 并整体回滚
//  7. 软删除租户行
//
// 全程要么全部提交要么全部回滚；对象存储中的文件内容不做任何操作.
func (s *TenantService) Delete(ctx context.Context, tenantID, actorID uint) (types.DeleteTenantResult, error) {
	cfg := configs.GetConfig().Quarantine
	opID := newOperationID()
	logger := nlog.Logger().With().
		Str("operation_id", opID).
		Uint("tenant_id", tenantID).
		Uint("actor_id", actorID).
		Logger()

	// 互斥锁只是避免两个操作员同时做重复工作，正确性由事务隔离兜底
	if s.kvClient != nil {
		lock := kv.NewLock(s.kvClient, fmt.Sprintf("tenant:delete:%d", tenantID))

		ok, err := lock.TryAcquire(ctx, opID, cfg.LockTTL)
		if err != nil {
			logger.Warn().Err(err).Msg("deletion lock unavailable, proceeding without it")
		} else if !ok {
			metrics.TenantDeletions.WithLabelValues("conflict").Inc()

			return types.DeleteTenantResult{}, ErrDeletionInProgress
		} else {
			defer func() {
				if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
					logger.Warn().Err(err).Msg("release deletion lock")
				}
			}()
		}
	}

	txCtx, cancel := context.WithTimeout(ctx, cfg.DeletionTimeout)
	defer cancel()

	started := time.Now()
	now := started.UTC()
	result := types.DeleteTenantResult{TenantID: tenantID, OperationID: opID}

	var tenantName string

	err := s.dbClient.GetDB().WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		st := store.New(tx)

		tenant, err := st.FindTenant(txCtx, tenantID)
		if err != nil {
			return err
		}

		tenantName = tenant.Name
		result.TenantName = tenant.Name
		logger.Info().Str("tenant_name", tenant.Name).Msg("tenant deletion started")

		rootID, err := st.EnsureQuarantineRoot(txCtx, actorID)
		if err != nil {
			return err
		}

		containerID, err := st.EnsureQuarantineContainer(txCtx, tenant, rootID, actorID, now)
		if err != nil {
			return err
		}

		result.QuarantineFolderID = containerID

		if result.FoldersReassigned, err = st.DetachAndTagFolders(txCtx, tenantID, containerID, actorID, now); err != nil {
			return err
		}

		if result.FilesReassigned, err = st.DetachAndTagFiles(txCtx, tenantID, actorID, now); err != nil {
			return err
		}

		if result.UsersDetached, err = st.DetachUsers(txCtx, tenantID, now); err != nil {
			return err
		}

		switch cfg.AdminPolicy {
		case configs.AdminPolicyDetach:
			var n int64
			if n, err = st.DetachTenantAdmins(txCtx, tenantID, now); err != nil {
				return err
			}

			result.UsersDetached += n
		default:
			if result.AdminsRemoved, err = st.DeleteTenantAdmins(txCtx, tenantID); err != nil {
				return err
			}
		}

		if result.GrantsRemoved, err = st.RemoveGrants(txCtx, tenantID); err != nil {
			return err
		}

		if cfg.PurgeDependents {
			if result.DependentsPurged, err = st.PurgeDependents(txCtx, tenantID); err != nil {
				return err
			}
		}

		// 不变量：最终删除前租户名下必须归零
		for _, kind := range []store.EntityKind{store.KindFolder, store.KindFile, store.KindUser} {
			count, err := st.CountOwned(txCtx, tenantID, kind)
			if err != nil {
				return err
			}

			if count > 0 {
				return fmt.Errorf("tenant %d still owns %d %s rows: %w",
					tenantID, count, kind, store.ErrPartialState)
			}
		}

		return st.DeleteTenant(txCtx, tenantID)
	})

	elapsed := time.Since(started)

	if err != nil {
		metrics.TenantDeletions.WithLabelValues("rolled_back").Inc()
		logger.Error().Err(err).Dur("elapsed", elapsed).Msg("tenant deletion rolled back")
		s.publishDeleteFailed(ctx, tenantID, tenantName, opID, err)

		return types.DeleteTenantResult{}, err
	}

	metrics.TenantDeletions.WithLabelValues("committed").Inc()
	metrics.DeletionDuration.Observe(elapsed.Seconds())
	metrics.ReassignedRows.WithLabelValues(string(store.KindFolder)).Add(float64(result.FoldersReassigned))
	metrics.ReassignedRows.WithLabelValues(string(store.KindFile)).Add(float64(result.FilesReassigned))
	metrics.ReassignedRows.WithLabelValues(string(store.KindUser)).Add(float64(result.UsersDetached))

	logger.Info().
		Int64("folders", result.FoldersReassigned).
		Int64("files", result.FilesReassigned).
		Int64("users", result.UsersDetached).
		Int64("admins_removed", result.AdminsRemoved).
		Int64("grants_removed", result.GrantsRemoved).
		Int64("dependents_purged", result.DependentsPurged).
		Uint("quarantine_folder_id", result.QuarantineFolderID).
		Dur("elapsed", elapsed).
		Msg("tenant deletion committed")

	s.publishDeleted(ctx, result, actorID)

	return result, nil
}

// publishDeleted 提交后尽力发布审计事件，失败只记日志.
func (s *TenantService) publishDeleted(ctx context.Context, result types.DeleteTenantResult, actorID uint) {
	events := configs.GetConfig().Events
	if s.mqClient == nil || !events.Enabled {
		return
	}

	ref := queue.TenantRef{TenantID: result.TenantID, TenantName: result.TenantName}

	if events.Tenant.Deleted {
		payload := queue.TenantDeletedPayload{
			Tenant:             ref,
			OperationID:        result.OperationID,
			ActorID:            actorID,
			FoldersReassigned:  result.FoldersReassigned,
			FilesReassigned:    result.FilesReassigned,
			UsersDetached:      result.UsersDetached,
			AdminsRemoved:      result.AdminsRemoved,
			GrantsRemoved:      result.GrantsRemoved,
			DependentsPurged:   result.DependentsPurged,
			QuarantineFolderID: result.QuarantineFolderID,
		}

		if err := queue.PublishTenantDeleted(ctx, s.mqClient, payload, queue.WithProducer("tenantvault")); err != nil {
			nlog.Logger().Warn().Err(err).Str("operation_id", result.OperationID).Msg("publish tenant.deleted")
		}
	}

	if events.Tenant.QuarantineCreated {
		payload := queue.QuarantineCreatedPayload{
			Tenant:      ref,
			OperationID: result.OperationID,
			ContainerID: result.QuarantineFolderID,
		}

		if err := queue.PublishQuarantineCreated(ctx, s.mqClient, payload, queue.WithProducer("tenantvault")); err != nil {
			nlog.Logger().Warn().Err(err).Str("operation_id", result.OperationID).Msg("publish quarantine.created")
		}
	}

	if events.Tenant.UsersDetached && result.UsersDetached > 0 {
		payload := queue.UsersDetachedPayload{
			Tenant:      ref,
			OperationID: result.OperationID,
			Count:       result.UsersDetached,
		}

		if err := queue.PublishUsersDetached(ctx, s.mqClient, payload, queue.WithProducer("tenantvault")); err != nil {
			nlog.Logger().Warn().Err(err).Str("operation_id", result.OperationID).Msg("publish users.detached")
		}
	}
}

func (s *TenantService) publishDeleteFailed(ctx context.Context, tenantID uint, tenantName, opID string, cause error) {
	events := configs.GetConfig().Events
	if s.mqClient == nil || !events.Enabled || !events.Tenant.DeleteFailed {
		return
	}

	payload := queue.TenantDeleteFailedPayload{
		Tenant:      queue.TenantRef{TenantID: tenantID, TenantName: tenantName},
		OperationID: opID,
		Error:       cause.Error(),
	}

	if err := queue.PublishTenantDeleteFailed(ctx, s.mqClient, payload, queue.WithProducer("tenantvault")); err != nil {
		nlog.Logger().Warn().Err(err).Str("operation_id", opID).Msg("publish tenant.delete.failed")
	}
}

// Get 返回存活租户.
func (s *TenantService) Get(ctx context.Context, tenantID uint) (*model.Tenant, error) {
	return store.New(s.dbClient.GetDB()).FindTenant(ctx, tenantID)
}
