package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/lingobridge/lingobridge"
)

// memoryEntry wraps a record with its absolute expiry; entries live on the
// recency list, most recently used at the front.
type memoryEntry struct {
	key       int64
	record    lingobridge.TranslationRecord
	expiresAt time.Time
}

// MemoryCache is a thread-safe in-memory record cache with a hard capacity
// bound and per-entry TTL. When full, the least recently used entry is
// evicted, expired or not. Expired entries are dropped lazily on access and
// in bulk by Sweep.
type MemoryCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	order   *list.List // *memoryEntry values, front = most recently used
	items   map[int64]*list.Element

	now func() time.Time // swapped out in tests
}

// NewMemoryCache creates a memory cache holding at most maxSize entries,
// each expiring ttl after its last Put. A maxSize of 0 caches nothing; a ttl
// of 0 expires every entry on its next access.
func NewMemoryCache(maxSize int, ttl time.Duration) *MemoryCache {
	if maxSize < 0 {
		maxSize = 0
	}
	return &MemoryCache{
		maxSize: maxSize,
		ttl:     ttl,
		order:   list.New(),
		items:   make(map[int64]*list.Element),
		now:     time.Now,
	}
}

// Get returns the record for key if present and not expired, marking it most
// recently used. An expired entry is evicted and reported as a miss.
func (c *MemoryCache) Get(key int64) (lingobridge.TranslationRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return lingobridge.TranslationRecord{}, false
	}

	entry := elem.Value.(*memoryEntry)
	if !c.now().Before(entry.expiresAt) {
		c.evict(elem)
		return lingobridge.TranslationRecord{}, false
	}

	c.order.MoveToFront(elem)
	return entry.record, true
}

// Put inserts or replaces the record for key, setting its expiry to now+TTL
// and marking it most recently used. If the cache is full and key is new,
// the least recently used entry is evicted first; the capacity bound is
// never exceeded.
func (c *MemoryCache) Put(key int64, rec lingobridge.TranslationRecord) {
	if c.maxSize == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.record = rec
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return
	}

	if len(c.items) >= c.maxSize {
		if oldest := c.order.Back(); oldest != nil {
			c.evict(oldest)
		}
	}

	elem := c.order.PushFront(&memoryEntry{
		key:       key,
		record:    rec,
		expiresAt: expiresAt,
	})
	c.items[key] = elem
}

// Remove evicts key unconditionally. No-op if absent.
func (c *MemoryCache) Remove(key int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.evict(elem)
	}
}

// Sweep evicts every expired entry and returns the count evicted.
func (c *MemoryCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	evicted := 0

	var next *list.Element
	for elem := c.order.Front(); elem != nil; elem = next {
		next = elem.Next()
		if !now.Before(elem.Value.(*memoryEntry).expiresAt) {
			c.evict(elem)
			evicted++
		}
	}

	return evicted
}

// Clear removes all entries.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.items = make(map[int64]*list.Element)
}

// Size returns the current number of entries, including any not yet swept.
func (c *MemoryCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// evict removes an element from both structures (lock must be held).
func (c *MemoryCache) evict(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*memoryEntry).key)
}

// Verify MemoryCache implements RecordCache
var _ RecordCache = (*MemoryCache)(nil)
