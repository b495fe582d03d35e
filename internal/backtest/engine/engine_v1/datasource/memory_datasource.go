package datasource

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/pkg/errors"
)

// MemoryDataSource keeps all bars in memory, sorted by time per symbol.
type MemoryDataSource struct {
	// data[symbol] is ascending by time
	data map[string][]types.MarketData
	mu   sync.RWMutex
}

func NewMemoryDataSource(bars ...types.MarketData) *MemoryDataSource {
	ds := &MemoryDataSource{
		data: make(map[string][]types.MarketData),
		mu:   sync.RWMutex{},
	}
	ds.Add(bars...)

	return ds
}

// Add stores bars, keeping each symbol's series sorted by time.
func (ds *MemoryDataSource) Add(bars ...types.MarketData) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	touched := make(map[string]struct{})
	for _, bar := range bars {
		ds.data[bar.Symbol] = append(ds.data[bar.Symbol], bar)
		touched[bar.Symbol] = struct{}{}
	}

	for symbol := range touched {
		sort.SliceStable(ds.data[symbol], func(i, j int) bool {
			return ds.data[symbol][i].Time.Before(ds.data[symbol][j].Time)
		})
	}
}

// Initialize implements DataSource. Bars are provided through Add, so only an empty path is accepted.
func (ds *MemoryDataSource) Initialize(path string) error {
	if path != "" {
		return errors.Newf(errors.ErrCodeInvalidParameter, "memory data source cannot load %s", path)
	}

	return nil
}

// GetBars implements DataSource.
func (ds *MemoryDataSource) GetBars(symbol string, interval Interval, start time.Time, end time.Time) ([]types.MarketData, error) {
	d, err := interval.Duration()
	if err != nil {
		return nil, err
	}

	ds.mu.RLock()
	defer ds.mu.RUnlock()

	series := ds.data[symbol]
	lo := sort.Search(len(series), func(i int) bool { return !series[i].Time.Before(start) })
	hi := sort.Search(len(series), func(i int) bool { return !series[i].Time.Before(end) })

	if lo >= hi {
		return []types.MarketData{}, nil
	}

	return aggregate(series[lo:hi], start, d), nil
}

// Exists implements DataSource.
func (ds *MemoryDataSource) Exists(symbol string) (bool, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	return len(ds.data[symbol]) > 0, nil
}

// GetAllSymbols implements DataSource.
func (ds *MemoryDataSource) GetAllSymbols() ([]string, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	symbols := make([]string, 0, len(ds.data))
	for symbol, series := range ds.data {
		if len(series) > 0 {
			symbols = append(symbols, symbol)
		}
	}

	slices.Sort(symbols)

	return symbols, nil
}

// Count implements DataSource.
func (ds *MemoryDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	count := 0

	for _, series := range ds.data {
		for _, bar := range series {
			if start.IsSome() && bar.Time.Before(start.Unwrap()) {
				continue
			}

			if end.IsSome() && !bar.Time.Before(end.Unwrap()) {
				continue
			}

			count++
		}
	}

	return count, nil
}

// Close implements DataSource.
func (ds *MemoryDataSource) Close() error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.data = make(map[string][]types.MarketData)

	return nil
}
