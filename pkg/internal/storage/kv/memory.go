package kv

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// memoryEntry 带过期时间的值.
type memoryEntry struct {
	data      []byte
	expiresAt time.Time // 零值表示不过期
}

func (e *memoryEntry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// MemoryKV 进程内 KV 实现，单实例部署下足以承担删除锁.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]memoryEntry
}

// NewMemoryKV 创建内存 KV 实例.
func NewMemoryKV(ctx context.Context, config any) (KVStore, error) {
	// 内存实现不需要特殊配置
	return &MemoryKV{data: make(map[string]memoryEntry)}, nil
}

// Get 获取键的值.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[key]
	if !ok || e.expired() {
		delete(m.data, key)
		return nil, fmt.Errorf("key not found: %s", key)
	}

	// 返回副本
	result := make([]byte, len(e.data))
	copy(result, e.data)

	return result, nil
}

// Set 设置键的值.
func (m *MemoryKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = newEntry(value, ttl)

	return nil
}

// SetNX 键不存在（或已过期）时写入.
func (m *MemoryKV) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.data[key]; ok && !e.expired() {
		return false, nil
	}

	m.data[key] = newEntry(value, ttl)

	return true, nil
}

// Delete 删除键.
func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)

	return nil
}

// Exists 检查键是否存在.
func (m *MemoryKV) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[key]
	if ok && e.expired() {
		delete(m.data, key)
		return false, nil
	}

	return ok, nil
}

// Close 关闭存储（内存实现无需操作）.
func (m *MemoryKV) Close() error {
	return nil
}

func newEntry(value []byte, ttl time.Duration) memoryEntry {
	data := make([]byte, len(value))
	copy(data, value)

	e := memoryEntry{data: data}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	return e
}

func init() {
	RegisterKVFactory(KVTypeMemory, NewMemoryKV)
}
