// Package storage 聚合存储资源：数据库、KV、消息队列与 S3 对象存储.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取存储客户端
//
//	dbClient := mgr.GetDBClient()
//	kvClient := mgr.GetKVClient()
package storage

import (
	"context"
	"sync"

	dbc "github.com/yeisme/tenantvault/pkg/internal/storage/db"
	kvc "github.com/yeisme/tenantvault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/tenantvault/pkg/internal/storage/mq"
	s3c "github.com/yeisme/tenantvault/pkg/internal/storage/s3"
	nlog "github.com/yeisme/tenantvault/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	DB *dbc.Client
	KV *kvc.Client
	MQ *mqc.Client
	S3 *s3c.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
// DB 与 KV 初始化失败视为致命错误；MQ 与 S3 只承载审计事件和下载链接，
// 失败时降级为不可用并记录警告.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		// DB
		if dbi, e := dbc.New(ctx); e != nil {
			err = e

			return
		} else {
			m.DB = dbi
		}

		// KV
		if kvi, e := kvc.NewKVClient(ctx); e != nil {
			err = e

			return
		} else {
			m.KV = kvi
		}

		// MQ
		if mqi, e := mqc.New(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("mq unavailable, audit events disabled")
		} else {
			m.MQ = mqi
		}

		// S3
		if s3i, e := s3c.New(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("s3 unavailable, download links disabled")
		} else {
			m.S3 = s3i
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	if m == nil {
		return nil
	}

	return m.DB
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	if m == nil {
		return nil
	}

	return m.KV
}

// GetMQClient 获取 MQ 客户端.
func (m *Manager) GetMQClient() *mqc.Client {
	if m == nil {
		return nil
	}

	return m.MQ
}

// GetS3Client 获取 S3 客户端.
func (m *Manager) GetS3Client() *s3c.Client {
	if m == nil {
		return nil
	}

	return m.S3
}

// Close 释放所有存储连接.
func (m *Manager) Close() error {
	var err error

	if m.MQ != nil {
		if e := m.MQ.Close(); e != nil {
			err = e
		}
	}

	if m.KV != nil {
		if e := m.KV.Close(); e != nil {
			err = e
		}
	}

	if m.DB != nil {
		if e := m.DB.Close(); e != nil {
			err = e
		}
	}

	return err
}
