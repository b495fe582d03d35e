package strategy

import (
	"time"

	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/art-trader/internal/calendar"
	"github.com/rxtech-lab/art-trader/internal/indicator"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/pkg/errors"
)

// MovingAverageTrendStrategy goes long when the previous market day closed
// above the moving average of the last Period daily closes and short
// otherwise. Entry, take profit and stop loss are placed like the previous
// day trend strategy.
type MovingAverageTrendStrategy struct {
	config     StrategyConfig
	dataSource datasource.DataSource
	location   *time.Location
}

func NewMovingAverageTrendStrategy(config StrategyConfig, ds datasource.DataSource, location *time.Location) *MovingAverageTrendStrategy {
	if location == nil {
		location = time.UTC
	}

	if config.Period == 0 {
		config.Period = defaultMovingAveragePeriod
	}

	if config.MovingAverage == "" {
		config.MovingAverage = indicator.SMA
	}

	return &MovingAverageTrendStrategy{
		config:     config,
		dataSource: ds,
		location:   location,
	}
}

func (s *MovingAverageTrendStrategy) Name() string {
	return MovingAverageTrendName
}

func (s *MovingAverageTrendStrategy) Strat(symbol types.Symbol, day calendar.Date) (types.Trade, error) {
	prev := calendar.PreviousMarketDay(day)

	first := prev
	for range s.config.Period - 1 {
		first = calendar.PreviousMarketDay(first)
	}

	bars, err := s.dataSource.GetBars(symbol.Ticker, datasource.Interval1d, first.Time(s.location), prev.AddDays(1).Time(s.location))
	if err != nil {
		return types.Trade{}, errors.Wrapf(errors.ErrCodeStrategyRuntimeError, err, "failed to read %s daily bars from %s to %s", symbol.Ticker, first, prev)
	}

	average, err := indicator.MovingAverage(s.config.MovingAverage, bars, s.config.Period)
	if err != nil {
		return types.Trade{}, errors.Wrapf(errors.GetCode(err), err, "no %s moving average for %s on %s", s.config.MovingAverage, symbol.Ticker, prev)
	}

	last := bars[len(bars)-1]
	if last.Time.Before(prev.Time(s.location)) {
		return types.Trade{}, errors.Newf(errors.ErrCodeDataNotFound, "no daily bar for %s on %s", symbol.Ticker, prev)
	}

	return bracketTrade(symbol.Ticker, last.Close, last.Close > average, s.config), nil
}
