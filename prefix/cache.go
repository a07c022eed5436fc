package prefix

import "sync"

// Cache mirrors the prefix store in memory. Reads come from every message
// handler, writes only from setprefix and warm-up.
type Cache struct {
	sync.RWMutex
	storage map[uint64]string
}

func NewCache() *Cache {
	return &Cache{
		storage: make(map[uint64]string),
	}
}

func (c *Cache) Lookup(guildID uint64) (string, bool) {
	c.RLock()
	p, ok := c.storage[guildID]
	c.RUnlock()
	return p, ok
}

func (c *Cache) Update(guildID uint64, prefix string) {
	c.Lock()
	c.storage[guildID] = prefix
	c.Unlock()
}

// Replace swaps the whole cache content for a copy of m.
func (c *Cache) Replace(m map[uint64]string) {
	storage := make(map[uint64]string, len(m))
	for k, v := range m {
		storage[k] = v
	}
	c.Lock()
	c.storage = storage
	c.Unlock()
}

func (c *Cache) Snapshot() map[uint64]string {
	c.RLock()
	defer c.RUnlock()
	out := make(map[uint64]string, len(c.storage))
	for k, v := range c.storage {
		out[k] = v
	}
	return out
}

func (c *Cache) Len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.storage)
}
