package complete

import (
	"container/list"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sync"

	"golang.org/x/sync/singleflight"

	"glint/internal/frontend"
)

// DefaultCacheCapacity bounds how many pinned front-end instances the cache
// keeps. A chain of completion requests at one edit location hits a single
// entry; a small LRU covers a handful of concurrent edit locations.
const DefaultCacheCapacity = 4

// Key identifies a compilation context: invocation arguments, derived
// buffer identity and content, and the adjusted completion offset.
type Key struct {
	Invocation     string
	BufferIdentity string
	ContentHash    [32]byte
	Offset         uint32
}

func (k Key) digest() string {
	h := sha256.New()
	h.Write([]byte(k.Invocation))
	h.Write([]byte{0})
	h.Write([]byte(k.BufferIdentity))
	h.Write([]byte{0})
	h.Write(k.ContentHash[:])
	var off [4]byte
	binary.LittleEndian.PutUint32(off[:], k.Offset)
	h.Write(off[:])
	return hex.EncodeToString(h.Sum(nil))
}

type entry struct {
	key  string
	inst *frontend.Instance

	// mu serializes parse-and-resolve-imports and second passes on the
	// shared instance; pins blocks eviction while a query holds the entry.
	mu   sync.Mutex
	pins int
}

// Cache reuses front-end instances across queries arriving at the same
// logical position. Acquisition is serialized per key; unrelated keys
// proceed independently.
type Cache struct {
	mu    sync.Mutex
	cap   int
	lru   *list.List // front = most recent; values are *entry
	index map[string]*list.Element
	group singleflight.Group
}

// NewCache creates a cache with the given capacity (<=0 means default).
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		cap:   capacity,
		lru:   list.New(),
		index: make(map[string]*list.Element),
	}
}

// Pinned is a scoped acquisition of a cached instance. The entry stays
// locked (serializing the key) and unevictable until Release.
type Pinned struct {
	cache *Cache
	ent   *entry
	done  bool
}

// Instance returns the pinned front-end instance.
func (p *Pinned) Instance() *frontend.Instance { return p.ent.inst }

// Release unlocks the entry. Idempotent, so it is safe to defer.
func (p *Pinned) Release() {
	if p.done {
		return
	}
	p.done = true
	p.ent.mu.Unlock()
	p.cache.mu.Lock()
	p.ent.pins--
	p.cache.mu.Unlock()
}

// Acquire returns the instance for the key, creating it if needed.
// Concurrent acquisitions of one key are collapsed: one goroutine creates
// the entry, the rest reuse it; the per-entry lock then serializes their
// second passes. The returned Pinned must be released on every exit path.
func (c *Cache) Acquire(key Key, newInstance func() *frontend.Instance) *Pinned {
	digest := key.digest()
	for {
		c.mu.Lock()
		if el, ok := c.index[digest]; ok {
			ent := el.Value.(*entry)
			ent.pins++
			c.lru.MoveToFront(el)
			c.mu.Unlock()
			ent.mu.Lock()
			return &Pinned{cache: c, ent: ent}
		}
		c.mu.Unlock()

		c.group.Do(digest, func() (any, error) {
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.index[digest]; ok {
				return nil, nil
			}
			ent := &entry{key: digest, inst: newInstance()}
			c.index[digest] = c.lru.PushFront(ent)
			c.evictLocked()
			return nil, nil
		})
		// Loop: the entry now exists (unless evicted by a burst of other
		// keys, in which case we create it again).
	}
}

// evictLocked drops least-recently-used unpinned entries beyond capacity.
func (c *Cache) evictLocked() {
	for c.lru.Len() > c.cap {
		evicted := false
		for el := c.lru.Back(); el != nil; el = el.Prev() {
			ent := el.Value.(*entry)
			if ent.pins > 0 {
				continue
			}
			c.lru.Remove(el)
			delete(c.index, ent.key)
			evicted = true
			break
		}
		if !evicted {
			return // everything pinned; allow temporary overflow
		}
	}
}

// Len reports the number of cached instances.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Contains reports whether a key is cached, without touching LRU order.
func (c *Cache) Contains(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.index[key.digest()]
	return ok
}

// KeyFor assembles the cache key for a derived marker buffer: canonical
// invocation, canonicalized buffer identity, content hash and adjusted
// offset.
func KeyFor(inv *frontend.Invocation, identity string, derived []byte, offset uint32) Key {
	return Key{
		Invocation:     inv.Canonical(),
		BufferIdentity: identity,
		ContentHash:    sha256.Sum256(derived),
		Offset:         offset,
	}
}
