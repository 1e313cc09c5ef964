package tailtip

import "sync"

type cacheEntry struct {
	desc *CommandDescription
	// null marks a cached "no description for this name" result, so the
	// resolver is not invoked again for it within the tier's lifetime.
	null bool
}

// Cache holds command descriptions across the three tiers the engine uses:
// persistent descriptions survive across lines once cached, temporary ones
// are cleared when the line is accepted, and volatile ones are consumed by
// the read that finds them.
type Cache struct {
	mu         sync.Mutex
	persistent map[string]cacheEntry
	temporary  map[string]cacheEntry
	volatile   map[string]cacheEntry
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{
		persistent: make(map[string]cacheEntry),
		temporary:  make(map[string]cacheEntry),
		volatile:   make(map[string]cacheEntry),
	}
}

// lookup checks persistent, then temporary, then volatile (removed on a
// hit). The bool reports whether any tier held an entry for name; when it
// is true with a nil description, a previously-resolved null is cached.
func (c *Cache) lookup(name string) (*CommandDescription, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.persistent[name]; ok {
		return e.desc, true
	}
	if e, ok := c.temporary[name]; ok {
		return e.desc, true
	}
	if e, ok := c.volatile[name]; ok {
		delete(c.volatile, name)
		return e.desc, true
	}
	return nil, false
}

func (c *Cache) storePersistent(name string, d *CommandDescription) {
	c.mu.Lock()
	c.persistent[name] = cacheEntry{desc: d}
	c.mu.Unlock()
}

func (c *Cache) storeTemporary(name string, d *CommandDescription) {
	c.mu.Lock()
	c.temporary[name] = cacheEntry{desc: d}
	c.mu.Unlock()
}

func (c *Cache) storeTemporaryNull(name string) {
	c.mu.Lock()
	c.temporary[name] = cacheEntry{null: true}
	c.mu.Unlock()
}

func (c *Cache) storeVolatile(name string, d *CommandDescription) {
	c.mu.Lock()
	c.volatile[name] = cacheEntry{desc: d}
	c.mu.Unlock()
}

// ClearTemporary discards everything collected during the current line;
// called once the line is accepted.
func (c *Cache) ClearTemporary() {
	c.mu.Lock()
	c.temporary = make(map[string]cacheEntry)
	c.mu.Unlock()
}
