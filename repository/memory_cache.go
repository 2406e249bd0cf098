package repository

import (
	"container/list"
	"sync"
)

// DefaultMemoryCacheSize bounds a MemoryCache created with a non-positive size.
const DefaultMemoryCacheSize = 10_000

// MemoryCache is a process-local, size-bounded CacheRepository used when no
// Redis address is configured and in tests. The least recently used entry is
// evicted once the cache is full.
type MemoryCache struct {
	mu    sync.Mutex
	size  int
	order *list.List
	items map[string]*list.Element
}

type memoryCacheItem struct {
	key   string
	value string
}

func NewMemoryCache(size int) *MemoryCache {
	if size <= 0 {
		size = DefaultMemoryCacheSize
	}
	return &MemoryCache{
		size:  size,
		order: list.New(),
		items: make(map[string]*list.Element),
	}
}

func (m *MemoryCache) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[key]
	if !ok {
		return "", false
	}
	m.order.MoveToFront(e)
	return e.Value.(*memoryCacheItem).value, true
}

func (m *MemoryCache) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.items[key]; ok {
		e.Value.(*memoryCacheItem).value = value
		m.order.MoveToFront(e)
		return nil
	}

	m.items[key] = m.order.PushFront(&memoryCacheItem{key: key, value: value})
	if m.order.Len() > m.size {
		oldest := m.order.Back()
		m.order.Remove(oldest)
		delete(m.items, oldest.Value.(*memoryCacheItem).key)
	}
	return nil
}

func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}
