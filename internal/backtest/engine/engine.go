package engine

import (
	"context"

	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/art-trader/internal/calendar"
	"github.com/rxtech-lab/art-trader/internal/strategy"
	"github.com/rxtech-lab/art-trader/internal/types"
)

// Lifecycle callback types for backtest phases
// All callbacks with error return can abort execution if they return an error

// OnBacktestStartCallback is called once before the first market day is simulated.
// runID is a unique identifier for this run.
type OnBacktestStartCallback func(runID string, totalDays int, totalSymbols int) error

// OnBacktestEndCallback is called when the backtest completes (always called via defer).
type OnBacktestEndCallback func(err error)

// OnDayEndCallback is called after the balance of a market day has been updated.
type OnDayEndCallback func(result types.BacktestResult) error

// OnTradeSimulatedCallback is called for every symbol and day that was simulated without error.
type OnTradeSimulatedCallback func(ticker string, day calendar.Date, result types.SimulationResult)

// OnSimulationErrorCallback is called for every symbol and day whose simulation failed.
// The failure contributes no profit to the day.
type OnSimulationErrorCallback func(ticker string, day calendar.Date, err error)

// LifecycleCallbacks holds all lifecycle callback functions for the backtest engine.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnBacktestStart   *OnBacktestStartCallback
	OnBacktestEnd     *OnBacktestEndCallback
	OnDayEnd          *OnDayEndCallback
	OnTradeSimulated  *OnTradeSimulatedCallback
	OnSimulationError *OnSimulationErrorCallback
}

type Engine interface {
	// Initialize the engine with the given YAML configuration.
	Initialize(config string) error
	// SetDataSource sets the price series the backtest reads from.
	SetDataSource(dataSource datasource.DataSource) error
	// LoadStrategy sets the strategy to backtest. Without it the strategy named in
	// the configuration is built.
	LoadStrategy(strategy strategy.Strategy) error
	// Run runs the backtest and returns one row per market day preceded by the
	// initial row. The context can be used to cancel the backtest between days.
	Run(ctx context.Context, callbacks LifecycleCallbacks) ([]types.BacktestResult, error)
	// GetConfigSchema returns the JSON schema of the engine configuration.
	GetConfigSchema() (string, error)
}
