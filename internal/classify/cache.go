package classify

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/recargos/internal/calendar"
	"github.com/recargos/internal/shift"
)

// DefaultCacheSize is used when no size is configured.
const DefaultCacheSize = 1024

// A shift spans at most two calendar dates, so these fields are everything
// the sweep reads.
type cacheKey struct {
	dailyHours int
	entry      shift.Clock
	exit       shift.Clock
	first      calendar.DayClass
	second     calendar.DayClass
}

// Cache memoizes Categorize. Results are identical to calling it directly.
type Cache struct {
	lru    *lru.Cache[cacheKey, Hours]
	hits   int
	misses int
}

// NewCache returns a cache holding up to size results. A size of zero or less
// selects DefaultCacheSize.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	l, err := lru.New[cacheKey, Hours](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

// Categorize returns the buckets for s, computing them on a miss.
func (c *Cache) Categorize(dailyHours int, s shift.Shift, days Classifier) Hours {
	key := cacheKey{
		dailyHours: dailyHours,
		entry:      s.Entry,
		exit:       s.Exit,
		first:      days.Classify(s.Date),
		second:     days.Classify(s.Date.AddDays(1)),
	}
	if h, ok := c.lru.Get(key); ok {
		c.hits++
		return h
	}
	c.misses++
	h := Categorize(dailyHours, s, days)
	c.lru.Add(key, h)
	return h
}

// Stats returns hit and miss counts since creation.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}

func (c *Cache) Len() int {
	return c.lru.Len()
}
