// Package snapshot keeps the last fetched copy of each upstream collection and
// drops it when a "collection changed" event is published.
package snapshot

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Collection string

const (
	Books    Collection = "books"
	Members  Collection = "members"
	Lendings Collection = "lendings"
	Fines    Collection = "fines"
)

type Event struct {
	Collection Collection
	At         time.Time
}

type Bus struct {
	mu   sync.RWMutex
	subs []func(Event)
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	b.subs = append(b.subs, fn)
	b.mu.Unlock()
}

// Publish runs subscribers synchronously, in subscription order.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	subs := make([]func(Event), len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}

// Changed publishes one event per collection.
func (b *Bus) Changed(cols ...Collection) {
	now := time.Now()
	for _, c := range cols {
		b.Publish(Event{Collection: c, At: now})
	}
}

type entry struct {
	data      any
	fetchedAt time.Time
}

type Cache struct {
	mu      sync.Mutex
	entries map[Collection]entry
	ttl     time.Duration
	now     func() time.Time
	log     *zap.Logger
}

// NewCache subscribes the cache to bus. A zero ttl keeps entries until invalidated.
func NewCache(bus *Bus, ttl time.Duration, log *zap.Logger) *Cache {
	c := &Cache{
		entries: make(map[Collection]entry),
		ttl:     ttl,
		now:     time.Now,
		log:     log.Named("snapshot"),
	}
	bus.Subscribe(func(ev Event) { c.Invalidate(ev.Collection) })
	return c
}

func (c *Cache) Invalidate(col Collection) {
	c.mu.Lock()
	delete(c.entries, col)
	c.mu.Unlock()
	c.log.Debug("invalidated", zap.String("collection", string(col)))
}

func (c *Cache) get(col Collection) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[col]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(e.fetchedAt) > c.ttl {
		delete(c.entries, col)
		return nil, false
	}
	return e.data, true
}

func (c *Cache) put(col Collection, data any) {
	c.mu.Lock()
	c.entries[col] = entry{data: data, fetchedAt: c.now()}
	c.mu.Unlock()
}

// Load returns the cached collection or fetches and caches it.
// Concurrent misses may fetch twice; the later result wins.
func Load[T any](ctx context.Context, c *Cache, col Collection, fetch func(ctx context.Context) ([]T, error)) ([]T, error) {
	if v, ok := c.get(col); ok {
		if items, ok := v.([]T); ok {
			return items, nil
		}
	}
	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.put(col, items)
	return items, nil
}
