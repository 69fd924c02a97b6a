package kv_test

import (
	"context"
	"testing"
	"time"

	"github.com/yeisme/tenantvault/pkg/internal/storage/kv"
)

// TestLockMutualExclusion 测试锁的互斥、释放与重获取.
func TestLockMutualExclusion(t *testing.T) {
	ctx := context.Background()

	store, err := kv.NewMemoryKV(ctx, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}
	defer store.Close() //nolint:errcheck

	lock := kv.NewLock(store, "tenant:delete:42")

	ok, err := lock.TryAcquire(ctx, "op-1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}

	// 第二个持有者拿不到
	ok, err = lock.TryAcquire(ctx, "op-2", time.Minute)
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}

	if ok {
		t.Error("expected second acquire to fail while lock held")
	}

	if err := lock.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}

	ok, err = lock.TryAcquire(ctx, "op-2", time.Minute)
	if err != nil || !ok {
		t.Errorf("reacquire after release: ok=%v err=%v", ok, err)
	}
}

// TestLockTTLExpiry 持有者崩溃后 TTL 防止死锁.
func TestLockTTLExpiry(t *testing.T) {
	ctx := context.Background()

	store, err := kv.NewMemoryKV(ctx, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}
	defer store.Close() //nolint:errcheck

	lock := kv.NewLock(store, "tenant:delete:7")

	ok, err := lock.TryAcquire(ctx, "op-1", 20*time.Millisecond)
	if err != nil || !ok {
		t.Fatalf("acquire: ok=%v err=%v", ok, err)
	}

	time.Sleep(50 * time.Millisecond)

	ok, err = lock.TryAcquire(ctx, "op-2", time.Minute)
	if err != nil || !ok {
		t.Errorf("expected acquire after ttl expiry, ok=%v err=%v", ok, err)
	}
}

// TestLockKeysIndependent 不同租户的锁互不影响.
func TestLockKeysIndependent(t *testing.T) {
	ctx := context.Background()

	store, err := kv.NewMemoryKV(ctx, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}
	defer store.Close() //nolint:errcheck

	a := kv.NewLock(store, "tenant:delete:1")
	b := kv.NewLock(store, "tenant:delete:2")

	if ok, err := a.TryAcquire(ctx, "op-a", time.Minute); err != nil || !ok {
		t.Fatalf("acquire a: ok=%v err=%v", ok, err)
	}

	if ok, err := b.TryAcquire(ctx, "op-b", time.Minute); err != nil || !ok {
		t.Errorf("lock on other tenant should be free, ok=%v err=%v", ok, err)
	}
}
