package recommend

import "strings"

// DefaultCacheSize is the number of (user, filter set) results kept by default.
const DefaultCacheSize = 20

// Cache memoizes ranked lists per (user, normalized filter set).
//
// On overflow one entry is evicted in Go map iteration order, which is unspecified
// and not recency based. Entries are copied on the way in and out.
// Cache is not safe for concurrent use.
type Cache struct {
	capacity int
	entries  map[string][]RankedDish
}

// NewCache creates a cache holding at most capacity entries.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string][]RankedDish, capacity),
	}
}

// CacheKey builds the order-independent key for a user and filter list.
func CacheKey(userID string, filters []string) string {
	return userID + "|" + strings.Join(NormalizeFilters(filters), ",")
}

// Get returns a copy of the cached list for key.
func (c *Cache) Get(key string) ([]RankedDish, bool) {
	list, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return cloneRanked(list), true
}

// Put stores a copy of list under key, evicting one entry if a new key would
// exceed capacity. It reports whether an entry was evicted.
func (c *Cache) Put(key string, list []RankedDish) bool {
	evicted := false
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		for k := range c.entries {
			delete(c.entries, k)
			evicted = true
			break
		}
	}
	c.entries[key] = cloneRanked(list)
	return evicted
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.entries = make(map[string][]RankedDish, c.capacity)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return len(c.entries) }

// Capacity returns the maximum number of entries.
func (c *Cache) Capacity() int { return c.capacity }

func cloneRanked(list []RankedDish) []RankedDish {
	out := make([]RankedDish, len(list))
	copy(out, list)
	return out
}
