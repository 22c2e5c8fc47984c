package pool

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/resume-pagefit/internal/types"
)

// Key identifies a generation request: the canonical keyword list plus the role context
type Key struct {
	Keywords string
	Context  string
}

// NewKey canonicalizes keywords (trimmed, lower-cased, deduplicated, sorted) into a cache key
func NewKey(keywords []string, context string) Key {
	seen := make(map[string]bool, len(keywords))
	canonical := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		canonical = append(canonical, k)
	}
	sort.Strings(canonical)
	return Key{
		Keywords: strings.Join(canonical, ","),
		Context:  strings.TrimSpace(context),
	}
}

func (k Key) String() string {
	return k.Keywords + "\x1f" + k.Context
}

// Entry holds the generated candidates for every structural section type.
// An Entry is never modified after construction.
type Entry struct {
	sets map[types.SectionType]*OrderedSet
}

// NewEntry builds an entry from per-type bullet lists, deduplicating each by exact text
func NewEntry(bullets map[types.SectionType][]string) *Entry {
	e := &Entry{sets: make(map[types.SectionType]*OrderedSet, len(bullets))}
	for t, list := range bullets {
		e.sets[t] = NewOrderedSet(list...)
	}
	return e
}

// Bullets returns a copy of the candidates for a section type
func (e *Entry) Bullets(t types.SectionType) []string {
	if e == nil {
		return nil
	}
	return e.sets[t].Items()
}

// Len returns the number of candidates for a section type
func (e *Entry) Len(t types.SectionType) int {
	if e == nil {
		return 0
	}
	return e.sets[t].Len()
}

func (e *Entry) contains(t types.SectionType, bullet string) bool {
	if e == nil {
		return false
	}
	return e.sets[t].Contains(bullet)
}

// Cache memoizes generated entries by Key. It is safe for concurrent use and
// may be shared across runs; its lifetime belongs to whoever creates it.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]*Entry
	group   singleflight.Group
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[Key]*Entry)}
}

// Get returns the entry stored under key
func (c *Cache) Get(key Key) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Put stores entry under key unless one is already present, and returns the stored entry
func (c *Cache) Put(key Key, entry *Entry) *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing
	}
	c.entries[key] = entry
	return entry
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every cached entry
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]*Entry)
}

// load returns the entry for key, calling fill at most once across concurrent
// callers when it is missing. Entries fill marks as not cacheable are returned
// to the callers sharing the flight but not stored.
func (c *Cache) load(key Key, fill func() (entry *Entry, cacheable bool)) (*Entry, bool) {
	if e, ok := c.Get(key); ok {
		return e, true
	}
	v, _, _ := c.group.Do(key.String(), func() (any, error) {
		if e, ok := c.Get(key); ok {
			return e, nil
		}
		e, cacheable := fill()
		if !cacheable {
			return e, nil
		}
		return c.Put(key, e), nil
	})
	return v.(*Entry), false
}
