package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// 过期key的默认清理间隔
const DefaultCleanupInterval = time.Minute

// LocalCache is a typed view over github.com/patrickmn/go-cache. It is safe
// for concurrent use.
type LocalCache[V any] struct {
	c *cache.Cache
}

// NewLocalCache returns a cache whose entries expire after ttl. A ttl of
// zero or less keeps entries until Delete or Flush.
func NewLocalCache[V any](ttl time.Duration) *LocalCache[V] {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &LocalCache[V]{c: cache.New(ttl, DefaultCleanupInterval)}
}

func (l *LocalCache[V]) Get(key string) (V, bool) {
	var zero V
	v, ok := l.c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(V)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Set stores value with the cache's default ttl.
func (l *LocalCache[V]) Set(key string, value V) {
	l.c.SetDefault(key, value)
}

func (l *LocalCache[V]) Delete(key string) {
	l.c.Delete(key)
}

func (l *LocalCache[V]) Len() int {
	return l.c.ItemCount()
}

func (l *LocalCache[V]) Flush() {
	l.c.Flush()
}
