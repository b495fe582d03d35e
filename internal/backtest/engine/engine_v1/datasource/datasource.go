package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/art-trader/internal/types"
)

type Interval string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval4h  Interval = "4h"
	Interval6h  Interval = "6h"
	Interval8h  Interval = "8h"
	Interval12h Interval = "12h"
	Interval1d  Interval = "1d"
	Interval1w  Interval = "1w"
)

// DataSource is the price series provider used by the backtest engine, the
// exchange rate resolver and the strategies.
type DataSource interface {
	// Initialize loads the price data found at path.
	Initialize(path string) error
	// GetBars returns the bars of symbol in [start, end), ascending by time.
	// Stored bars finer than interval are aggregated into buckets of interval
	// aligned on start.
	GetBars(symbol string, interval Interval, start time.Time, end time.Time) ([]types.MarketData, error)
	// Exists reports whether any bar is stored for symbol.
	Exists(symbol string) (bool, error)
	// GetAllSymbols returns the distinct stored symbols in ascending order.
	GetAllSymbols() ([]string, error)
	// Count returns the number of stored bars in [start, end). A missing bound is open.
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close releases any resources held by the data source.
	Close() error
}
