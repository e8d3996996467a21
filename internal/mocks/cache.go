package mocks

import (
	"context"
	"strings"
	"sync"
	"time"
)

// FakeCache 内存缓存，实现 redis.AsyncCacheService
// 不模拟过期，SubmitTask 同步执行，测试结果可预期
type FakeCache struct {
	mu   sync.RWMutex
	data map[string]string
	sets map[string]map[string]struct{}
}

func NewFakeCache() *FakeCache {
	return &FakeCache{
		data: make(map[string]string),
		sets: make(map[string]map[string]struct{}),
	}
}

func (c *FakeCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *FakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[key], nil
}

func (c *FakeCache) GetOrError(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if value, ok := c.data[key]; ok {
		return value, nil
	}
	return "", context.Canceled
}

func (c *FakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *FakeCache) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.data {
		if strings.HasPrefix(key, prefix) {
			delete(c.data, key)
		}
	}
	return nil
}

func (c *FakeCache) DeleteByPatterns(ctx context.Context, patterns []string) error {
	for _, pattern := range patterns {
		if err := c.DeleteByPattern(ctx, pattern); err != nil {
			return err
		}
	}
	return nil
}

func (c *FakeCache) AddToSet(ctx context.Context, key string, members ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.sets[key]
	if !ok {
		set = make(map[string]struct{})
		c.sets[key] = set
	}
	for _, member := range members {
		set[member.(string)] = struct{}{}
	}
	return nil
}

func (c *FakeCache) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0)
	for member := range c.sets[key] {
		out = append(out, member)
	}
	return out, nil
}

func (c *FakeCache) RemoveFromSet(ctx context.Context, key string, members ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.sets[key]
	if !ok {
		return nil
	}
	for _, member := range members {
		delete(set, member.(string))
	}
	return nil
}

// SubmitTask 同步执行，避免测试中的时序竞争
func (c *FakeCache) SubmitTask(action func()) {
	action()
}
