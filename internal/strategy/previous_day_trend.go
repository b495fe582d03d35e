package strategy

import (
	"time"

	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/art-trader/internal/calendar"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/pkg/errors"
)

// PreviousDayTrendStrategy follows the direction of the previous market day:
// long when it closed above its open, short otherwise. The entry is the
// previous close and take profit and stop loss sit a fixed percent away.
type PreviousDayTrendStrategy struct {
	config     StrategyConfig
	dataSource datasource.DataSource
	location   *time.Location
}

func NewPreviousDayTrendStrategy(config StrategyConfig, ds datasource.DataSource, location *time.Location) *PreviousDayTrendStrategy {
	if location == nil {
		location = time.UTC
	}

	return &PreviousDayTrendStrategy{
		config:     config,
		dataSource: ds,
		location:   location,
	}
}

func (s *PreviousDayTrendStrategy) Name() string {
	return PreviousDayTrendName
}

func (s *PreviousDayTrendStrategy) Strat(symbol types.Symbol, day calendar.Date) (types.Trade, error) {
	prev := calendar.PreviousMarketDay(day)
	start := prev.Time(s.location)

	bars, err := s.dataSource.GetBars(symbol.Ticker, datasource.Interval1d, start, start.Add(24*time.Hour))
	if err != nil {
		return types.Trade{}, errors.Wrapf(errors.ErrCodeStrategyRuntimeError, err, "failed to read %s daily bar for %s", symbol.Ticker, prev)
	}

	if len(bars) == 0 {
		return types.Trade{}, errors.Newf(errors.ErrCodeDataNotFound, "no daily bar for %s on %s", symbol.Ticker, prev)
	}

	bar := bars[0]

	return bracketTrade(symbol.Ticker, bar.Close, bar.Close > bar.Open, s.config), nil
}

// bracketTrade enters at entry with take profit and stop loss the configured
// percent away on the side given by long.
func bracketTrade(ticker string, entry float64, long bool, config StrategyConfig) types.Trade {
	tp := config.TakeProfitPercent / 100
	sl := config.StopLossPercent / 100

	if long {
		return types.Trade{
			Ticker:     ticker,
			Direction:  types.DirectionLong,
			EntryPrice: entry,
			TakeProfit: entry * (1 + tp),
			StopLoss:   entry * (1 - sl),
			Volume:     config.Volume,
		}
	}

	return types.Trade{
		Ticker:     ticker,
		Direction:  types.DirectionShort,
		EntryPrice: entry,
		TakeProfit: entry * (1 - tp),
		StopLoss:   entry * (1 + sl),
		Volume:     config.Volume,
	}
}
