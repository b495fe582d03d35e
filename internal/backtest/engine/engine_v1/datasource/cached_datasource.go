package datasource

import (
	"fmt"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/art-trader/internal/types"
)

// CachedDataSource wraps a DataSource and memoizes GetBars and Exists.
// The same hourly window is asked for by the day loop, the exchange rate
// resolver and the strategies, so repeated queries are served from memory.
// It is safe for concurrent use.
type CachedDataSource struct {
	underlying     DataSource
	barsCache      map[string][]types.MarketData
	barsErrCache   map[string]error
	existsCache    map[string]bool
	existsErrCache map[string]error
	mu             sync.RWMutex
}

// NewCachedDataSource creates a new CachedDataSource wrapping the given DataSource.
func NewCachedDataSource(underlying DataSource) *CachedDataSource {
	return &CachedDataSource{
		underlying:     underlying,
		barsCache:      make(map[string][]types.MarketData),
		barsErrCache:   make(map[string]error),
		existsCache:    make(map[string]bool),
		existsErrCache: make(map[string]error),
	}
}

// ClearCache drops every memoized result.
func (c *CachedDataSource) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.barsCache = make(map[string][]types.MarketData)
	c.barsErrCache = make(map[string]error)
	c.existsCache = make(map[string]bool)
	c.existsErrCache = make(map[string]error)
}

// Initialize implements DataSource. Loading new data invalidates the cache.
func (c *CachedDataSource) Initialize(path string) error {
	c.ClearCache()

	return c.underlying.Initialize(path)
}

// GetBars implements DataSource with caching.
func (c *CachedDataSource) GetBars(symbol string, interval Interval, start time.Time, end time.Time) ([]types.MarketData, error) {
	key := c.buildBarsKey(symbol, interval, start, end)

	c.mu.RLock()
	if data, ok := c.barsCache[key]; ok {
		err := c.barsErrCache[key]
		c.mu.RUnlock()

		return data, err
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if data, ok := c.barsCache[key]; ok {
		return data, c.barsErrCache[key]
	}

	data, err := c.underlying.GetBars(symbol, interval, start, end)
	c.barsCache[key] = data
	c.barsErrCache[key] = err

	return data, err
}

// Exists implements DataSource with caching.
func (c *CachedDataSource) Exists(symbol string) (bool, error) {
	c.mu.RLock()
	if exists, ok := c.existsCache[symbol]; ok {
		err := c.existsErrCache[symbol]
		c.mu.RUnlock()

		return exists, err
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if exists, ok := c.existsCache[symbol]; ok {
		return exists, c.existsErrCache[symbol]
	}

	exists, err := c.underlying.Exists(symbol)
	c.existsCache[symbol] = exists
	c.existsErrCache[symbol] = err

	return exists, err
}

// GetAllSymbols implements DataSource.
func (c *CachedDataSource) GetAllSymbols() ([]string, error) {
	return c.underlying.GetAllSymbols()
}

// Count implements DataSource.
func (c *CachedDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	return c.underlying.Count(start, end)
}

// Close implements DataSource.
func (c *CachedDataSource) Close() error {
	c.ClearCache()

	return c.underlying.Close()
}

func (c *CachedDataSource) buildBarsKey(symbol string, interval Interval, start time.Time, end time.Time) string {
	return fmt.Sprintf("%s:%s:%d:%d", symbol, interval, start.UnixNano(), end.UnixNano())
}
