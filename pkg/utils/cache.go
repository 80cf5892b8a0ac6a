package utils

import (
	"sync"
	"time"
)

// ==================== 授权状态缓存 ====================

// 授权流程内的 state(nonce) -> verifier 绑定，10 分钟内有效
const stateTTL = 10 * time.Minute

// cacheItem 内部结构，包含值和过期时间
type cacheItem struct {
	value      string
	expiration int64
}

// StateCache 并发安全的一次性状态缓存
// key: state(nonce)
// value: verifier:tenant_id
type StateCache struct {
	items sync.Map
}

func NewStateCache() *StateCache {
	return &StateCache{}
}

// Set 写入缓存，默认 10 分钟过期，足够完成授权流程
func (c *StateCache) Set(key, value string) {
	c.items.Store(key, cacheItem{
		value:      value,
		expiration: time.Now().Add(stateTTL).UnixNano(),
	})
}

// Get 获取缓存并验证是否过期
func (c *StateCache) Get(key string) (string, bool) {
	val, ok := c.items.Load(key)
	if !ok {
		return "", false
	}
	item := val.(cacheItem)
	if time.Now().UnixNano() > item.expiration {
		c.items.Delete(key) // 懒删除
		return "", false
	}
	return item.value, true
}

// Delete 删除缓存 (用完即焚)
func (c *StateCache) Delete(key string) {
	c.items.Delete(key)
}

// Sweep 主动清理已过期的条目，返回清理数量 (由定时任务调用)
func (c *StateCache) Sweep() int {
	now := time.Now().UnixNano()
	removed := 0
	c.items.Range(func(key, val interface{}) bool {
		if item, ok := val.(cacheItem); ok && now > item.expiration {
			c.items.Delete(key)
			removed++
		}
		return true
	})
	return removed
}
