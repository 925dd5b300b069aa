package denylist

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Cached wraps a Store and remembers ids known to be revoked.
// Only positive answers are cached; a miss always reaches the backing store.
type Cached struct {
	next Store

	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List
	now      func() time.Time
}

type cachedEntry struct {
	id    string
	until time.Time
}

// NewCached creates a read-through cache in front of next holding at most
// capacity revoked ids. It panics if capacity is not positive.
func NewCached(next Store, capacity int) *Cached {
	if capacity <= 0 {
		panic("denylist: cache capacity must be positive")
	}
	return &Cached{
		next:     next,
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
		now:      time.Now,
	}
}

// Revoke writes through to the backing store and caches the id on success.
func (c *Cached) Revoke(ctx context.Context, id string, until time.Time) error {
	if err := c.next.Revoke(ctx, id, until); err != nil {
		return err
	}
	c.put(id, until)
	return nil
}

// IsRevoked answers from the cache when possible.
func (c *Cached) IsRevoked(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrEmptyID
	}
	if c.get(id) {
		return true, nil
	}

	revoked, err := c.next.IsRevoked(ctx, id)
	if err != nil {
		return false, err
	}
	if revoked {
		// Horizon unknown on a read; keep it until evicted by size.
		c.put(id, time.Time{})
	}
	return revoked, nil
}

// Len returns the number of cached ids.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cached) get(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[id]
	if !ok {
		return false
	}

	entry := elem.Value.(*cachedEntry)
	if !entry.until.IsZero() && c.now().After(entry.until) {
		c.removeElement(elem)
		return false
	}

	c.order.MoveToFront(elem)
	return true
}

func (c *Cached) put(id string, until time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[id]; ok {
		entry := elem.Value.(*cachedEntry)
		if !until.IsZero() && until.After(entry.until) {
			entry.until = until
		}
		c.order.MoveToFront(elem)
		return
	}

	c.items[id] = c.order.PushFront(&cachedEntry{id: id, until: until})
	if c.order.Len() > c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Must be called with lock held.
func (c *Cached) removeElement(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*cachedEntry).id)
}
