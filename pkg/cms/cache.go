package cms

import (
	"container/list"
	"context"
	"errors"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrKeyNotFound  = errors.New("key not found")
	ErrEntryExpired = errors.New("entry expired")
)

// CacheEntry is a cached response body.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
	ETag      string    `json:"etag,omitempty"`
}

// Expired reports whether the entry is past its expiry.
func (e *CacheEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Cache is a response cache backend.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// CacheKey builds a cache key from a request. Query values are sorted so that
// equivalent queries share an entry. Credentials are never part of the key.
func CacheKey(method, endpoint string, query url.Values) string {
	var builder strings.Builder

	builder.WriteString(method)
	builder.WriteString(" ")
	builder.WriteString(endpoint)

	if len(query) == 0 {
		return builder.String()
	}

	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	builder.WriteString("?")

	for i, key := range keys {
		if i > 0 {
			builder.WriteString("&")
		}

		values := append([]string(nil), query[key]...)
		sort.Strings(values)

		builder.WriteString(url.QueryEscape(key))
		builder.WriteString("=")
		builder.WriteString(url.QueryEscape(strings.Join(values, ",")))
	}

	return builder.String()
}

// MemoryCache is a bounded in-memory cache that evicts the least recently
// used entry when full. It is safe for concurrent use.
type MemoryCache struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	order   *list.List
	now     func() time.Time
}

type memoryItem struct {
	key   string
	entry *CacheEntry
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
// A non-positive maxSize means unbounded.
func NewMemoryCache(maxSize int) *MemoryCache {
	return &MemoryCache{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		order:   list.New(),
		now:     time.Now,
	}
}

// Get returns a live entry.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	item, _ := elem.Value.(*memoryItem)
	if item.entry.Expired(c.now()) {
		c.removeElement(elem)

		return nil, ErrEntryExpired
	}

	c.order.MoveToFront(elem)

	return item.entry, nil
}

// Set stores an entry, evicting the oldest one if the cache is full.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		item, _ := elem.Value.(*memoryItem)
		item.entry = entry
		c.order.MoveToFront(elem)

		return nil
	}

	c.items[key] = c.order.PushFront(&memoryItem{key: key, entry: entry})

	if c.maxSize > 0 && c.order.Len() > c.maxSize {
		c.removeElement(c.order.Back())
	}

	return nil
}

// Delete removes an entry.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
	}

	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order.Init()

	return nil
}

// Has reports whether a live entry exists.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

func (c *MemoryCache) removeElement(elem *list.Element) {
	item, _ := elem.Value.(*memoryItem)
	delete(c.items, item.key)
	c.order.Remove(elem)
}

// Cleanup evicts every expired entry.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()

		item, _ := elem.Value.(*memoryItem)
		if item.entry.Expired(now) {
			c.removeElement(elem)
		}

		elem = prev
	}
}

// CacheStats counts cache activity.
type CacheStats struct {
	Hits   int64 `json:"hits"   yaml:"hits"`
	Misses int64 `json:"misses" yaml:"misses"`
	Sets   int64 `json:"sets"   yaml:"sets"`
	Errors int64 `json:"errors" yaml:"errors"`
}

// GetHitRate returns hits over lookups, or zero when nothing was looked up.
func (s *CacheStats) GetHitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}
