package memory

import (
	utilKit "github.com/authogonal/account-service/kit/util"
)

// Cache is a process-wide last-write-wins cache. Entries are never evicted
// or expired; it is a staleness-tolerance mechanism for an eventually
// consistent backing store, not a security boundary, and callers must not
// store plaintext secrets in it.
type Cache[V any] struct {
	entries utilKit.GenericSyncMap[string, V]
}

func CreateCache[V any]() *Cache[V] {
	return &Cache[V]{}
}

func (c *Cache[V]) Set(key string, value V) {
	c.entries.Store(key, value)
}

func (c *Cache[V]) Get(key string) (V, bool) {
	return c.entries.Load(key)
}

func (c *Cache[V]) Delete(key string) {
	c.entries.Delete(key)
}

func (c *Cache[V]) Range(f func(key string, value V) bool) {
	c.entries.Range(f)
}
