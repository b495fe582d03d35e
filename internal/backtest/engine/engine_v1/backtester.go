package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rxtech-lab/art-trader/internal/backtest/engine"
	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/exchange"
	"github.com/rxtech-lab/art-trader/internal/calendar"
	"github.com/rxtech-lab/art-trader/internal/logger"
	"github.com/rxtech-lab/art-trader/internal/strategy"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/pkg/errors"
	"go.uber.org/zap"
)

// BacktesterOptions tunes a Backtester. The zero value runs sequentially in UTC
// without callbacks.
type BacktesterOptions struct {
	// Location is the timezone market days start in.
	Location *time.Location
	// Parallel simulates the symbols of a day concurrently.
	Parallel bool
	// Callbacks receives OnDayEnd, OnTradeSimulated and OnSimulationError.
	// The start and end callbacks belong to the engine running the backtester.
	Callbacks engine.LifecycleCallbacks
}

// Backtester replays a strategy over a range of market days and settles the
// profit of every day into an account.
type Backtester struct {
	dataSource datasource.DataSource
	rates      exchange.RateResolver
	fee        commission_fee.CommissionFee
	log        *logger.Logger
	options    BacktesterOptions
}

// symbolOutcome is what one symbol contributed to a day.
type symbolOutcome struct {
	result types.SimulationResult
	err    error
}

func NewBacktester(
	ds datasource.DataSource,
	rates exchange.RateResolver,
	fee commission_fee.CommissionFee,
	log *logger.Logger,
	options BacktesterOptions,
) *Backtester {
	if options.Location == nil {
		options.Location = time.UTC
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Backtester{
		dataSource: ds,
		rates:      rates,
		fee:        fee,
		log:        log,
		options:    options,
	}
}

// Run returns the initial row, dated the market day before start, followed by
// one row per market day in [start, end). A failure to simulate a symbol on a
// day counts as zero profit. A negative balance, a failing callback or a
// cancelled ctx stops the run and the rows produced so far are returned with
// the error.
func (b *Backtester) Run(
	ctx context.Context,
	strat strategy.Strategy,
	symbols []types.Symbol,
	start calendar.Date,
	end calendar.Date,
	account types.Account,
) ([]types.BacktestResult, error) {
	if strat == nil {
		return nil, errors.New(errors.ErrCodeBacktestNoStrategy, "no strategy to backtest")
	}

	simulator := NewTradeSimulator(b.rates, b.fee, account.Currency())

	results := []types.BacktestResult{{
		Date:    calendar.PreviousMarketDay(start),
		Profit:  0,
		Balance: account.Balance(),
	}}

	for day := range calendar.DateRange(start, end) {
		if err := ctx.Err(); err != nil {
			return results, errors.Wrap(errors.ErrCodeBacktestCancelled, "backtest cancelled", err)
		}

		outcomes := b.simulateDay(strat, simulator, symbols, day)

		dayProfit := 0.0

		for i, outcome := range outcomes {
			ticker := symbols[i].Ticker
			if outcome.err != nil {
				b.log.Warn("Failed to simulate trade",
					zap.String("ticker", ticker),
					zap.String("date", day.String()),
					zap.Error(outcome.err),
				)

				if b.options.Callbacks.OnSimulationError != nil {
					(*b.options.Callbacks.OnSimulationError)(ticker, day, outcome.err)
				}

				continue
			}

			dayProfit += outcome.result.Profit

			if b.options.Callbacks.OnTradeSimulated != nil {
				(*b.options.Callbacks.OnTradeSimulated)(ticker, day, outcome.result)
			}
		}

		if err := types.AddProfit(account, dayProfit); err != nil {
			b.log.Error("Failed to settle daily profit",
				zap.String("date", day.String()),
				zap.Float64("profit", dayProfit),
				zap.Float64("balance", account.Balance()),
			)

			return results, err
		}

		row := types.BacktestResult{
			Date:    day,
			Profit:  dayProfit,
			Balance: account.Balance(),
		}
		results = append(results, row)

		b.log.Debug("Market day settled",
			zap.String("date", day.String()),
			zap.Float64("profit", row.Profit),
			zap.Float64("balance", row.Balance),
		)

		if b.options.Callbacks.OnDayEnd != nil {
			if err := (*b.options.Callbacks.OnDayEnd)(row); err != nil {
				return results, errors.Wrap(errors.ErrCodeCallbackFailed, "OnDayEnd callback failed", err)
			}
		}
	}

	return results, nil
}

// simulateDay returns the outcome of every symbol in symbol order.
func (b *Backtester) simulateDay(
	strat strategy.Strategy,
	simulator *TradeSimulator,
	symbols []types.Symbol,
	day calendar.Date,
) []symbolOutcome {
	outcomes := make([]symbolOutcome, len(symbols))

	if !b.options.Parallel {
		for i, symbol := range symbols {
			outcomes[i] = b.simulateSymbol(strat, simulator, symbol, day)
		}

		return outcomes
	}

	var wg sync.WaitGroup

	for i, symbol := range symbols {
		wg.Add(1)

		go func() {
			defer wg.Done()

			outcomes[i] = b.simulateSymbol(strat, simulator, symbol, day)
		}()
	}

	wg.Wait()

	return outcomes
}

func (b *Backtester) simulateSymbol(
	strat strategy.Strategy,
	simulator *TradeSimulator,
	symbol types.Symbol,
	day calendar.Date,
) symbolOutcome {
	trade, err := strat.Strat(symbol, day)
	if err != nil {
		return symbolOutcome{err: err}
	}

	if err := trade.Validate(); err != nil {
		return symbolOutcome{err: err}
	}

	bars, err := fetchDayPriceAction(b.dataSource, symbol.Ticker, day, b.options.Location)
	if err != nil {
		return symbolOutcome{err: err}
	}

	result, err := simulator.Simulate(trade, symbol, bars)
	if err != nil {
		return symbolOutcome{err: err}
	}

	return symbolOutcome{result: result}
}
