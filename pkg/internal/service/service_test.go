package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/tenantvault/pkg/configs"
	ctxPkg "github.com/yeisme/tenantvault/pkg/context"
	"github.com/yeisme/tenantvault/pkg/internal/model"
	"github.com/yeisme/tenantvault/pkg/internal/storage"
	dbc "github.com/yeisme/tenantvault/pkg/internal/storage/db"
	kvc "github.com/yeisme/tenantvault/pkg/internal/storage/kv"
)

// newTestCtx 构造带内存存储的测试上下文：内存 sqlite + 内存 KV，无 MQ/S3.
func newTestCtx(t *testing.T) (context.Context, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// 内存库绑定单个连接，连接池复用会拿到空库
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	kvStore, err := kvc.NewMemoryKV(context.Background(), nil)
	if err != nil {
		t.Fatalf("memory kv: %v", err)
	}

	setTestConfig()

	mgr := &storage.Manager{
		DB: &dbc.Client{DB: gdb},
		KV: &kvc.Client{KVStore: kvStore},
	}

	return ctxPkg.WithStorageManager(context.Background(), mgr), gdb
}

// setTestConfig 写入删除编排所需的配置项，事件发布保持关闭.
func setTestConfig() {
	cfg := configs.GetConfig()
	cfg.Quarantine = configs.QuarantineConfig{
		DeletionTimeout: 30 * time.Second,
		LockTTL:         time.Minute,
		PurgeDependents: true,
		AdminPolicy:     configs.AdminPolicyDelete,
		PresignExpiry:   15 * time.Minute,
	}
	cfg.Events.Enabled = false
}

func uptr(v uint) *uint { return &v }

// serviceKV 取出测试上下文中的 KV 客户端.
func serviceKV(t *testing.T, ctx context.Context) *kvc.Client {
	t.Helper()

	c := ctxPkg.GetKVClient(ctx)
	if c == nil {
		t.Fatal("kv client missing from test context")
	}

	return c
}

// lockKey 与删除编排使用的锁键保持一致.
func lockKey(tenantID uint) string {
	return fmt.Sprintf("tenant:delete:%d", tenantID)
}
