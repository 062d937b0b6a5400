package source

import (
	"sort"
	"sync"
)

type pageEntry[T any] struct {
	data       T
	lastAccess uint64
}

// PageCache is a thread-safe LRU cache of pages keyed by page number.
type PageCache[T any] struct {
	mu      sync.Mutex
	entries map[int]pageEntry[T]
	maxSize int
	clock   uint64
}

// NewPageCache creates a cache holding at most maxSize pages.
func NewPageCache[T any](maxSize int) *PageCache[T] {
	return &PageCache[T]{
		entries: make(map[int]pageEntry[T]),
		maxSize: max(1, maxSize),
	}
}

// Get returns the page and marks it recently used.
func (c *PageCache[T]) Get(page int) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[page]
	if !ok {
		var zero T
		return zero, false
	}
	c.clock++
	e.lastAccess = c.clock
	c.entries[page] = e
	return e.data, true
}

// Set stores a page, evicting the least recently used pages over capacity.
func (c *PageCache[T]) Set(page int, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clock++
	c.entries[page] = pageEntry[T]{data: data, lastAccess: c.clock}
	c.evictOldestLocked()
}

// Purge drops every page.
func (c *PageCache[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]pageEntry[T])
}

// Len returns the number of cached pages.
func (c *PageCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldestLocked must be called with the lock held.
func (c *PageCache[T]) evictOldestLocked() {
	excess := len(c.entries) - c.maxSize
	if excess <= 0 {
		return
	}

	type pageAccess struct {
		page       int
		lastAccess uint64
	}
	pages := make([]pageAccess, 0, len(c.entries))
	for p, e := range c.entries {
		pages = append(pages, pageAccess{p, e.lastAccess})
	}
	sort.Slice(pages, func(i, j int) bool {
		return pages[i].lastAccess < pages[j].lastAccess
	})
	for i := range excess {
		delete(c.entries, pages[i].page)
	}
}
