package propfilter

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/util"
)

// DefaultCacheSize is the number of filter results kept when no size is
// configured.
const DefaultCacheSize = 256

// Cache memoizes Filter results per document. Results are shared slices and
// must not be modified by callers.
//
// A nil *Cache is valid and means caching is disabled: Filter computes every
// result and Stats and Len report zero.
//
// Thread Safety:
//   - All methods are safe for concurrent use; the LRU carries its own lock
//     and the counters are atomic.
type Cache struct {
	lru    *lru.Cache[string, []catalog.Prop]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache creates a Cache holding up to size results. A non-positive size
// uses DefaultCacheSize.
func NewCache(size int, logger *slog.Logger) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if logger == nil {
		logger = util.DiscardLogger()
	}

	c, err := lru.NewWithEvict(size, func(key string, value []catalog.Prop) {
		logger.Debug("prop filter cache evict", "key", key, "props", len(value))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create prop filter cache: %w", err)
	}
	return &Cache{lru: c}, nil
}

// Filter returns Filter(props, query, selected), reusing an earlier result
// for the same document, query and selection.
func (c *Cache) Filter(docID string, props []catalog.Prop, query string, selected *Selection) []catalog.Prop {
	if c == nil {
		return Filter(props, query, selected)
	}

	key := cacheKey(docID, query, selected)
	if out, ok := c.lru.Get(key); ok {
		c.hits.Add(1)
		return out
	}
	c.misses.Add(1)

	out := Filter(props, query, selected)
	c.lru.Add(key, out)
	return out
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// cacheKey folds the query to what Filter depends on: blank or not, and its
// normalized text.
func cacheKey(docID, query string, selected *Selection) string {
	var b strings.Builder
	b.WriteString(docID)
	b.WriteByte(0)
	if query != "" {
		b.WriteString("q:")
		b.WriteString(util.NormalizeQuery(query))
	}
	b.WriteByte(0)
	b.WriteString(strings.Join(selected.Names(), "\x1f"))
	return b.String()
}
