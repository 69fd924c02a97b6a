package kv

import (
	"context"
	"time"
)

// Lock 基于 SetNX 的轻量互斥锁，用于阻止两个操作员同时触发同一租户的删除.
// 正确性不依赖它（事务隔离兜底），它只是避免无谓的并发冲突与重复工作.
type Lock struct {
	store KVStore
	key   string
}

// NewLock 创建指定键上的锁.
func NewLock(store KVStore, key string) *Lock {
	return &Lock{store: store, key: key}
}

// TryAcquire 尝试获取锁，已被持有时返回 false. ttl 防止持有者崩溃后死锁.
func (l *Lock) TryAcquire(ctx context.Context, owner string, ttl time.Duration) (bool, error) {
	return l.store.SetNX(ctx, l.key, []byte(owner), ttl)
}

// Release 释放锁.
func (l *Lock) Release(ctx context.Context) error {
	return l.store.Delete(ctx, l.key)
}
