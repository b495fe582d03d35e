package engine

import (
	"context"

	"github.com/google/uuid"
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

type BacktestEngineV1 struct {
	config      BacktestEngineV1Config
	initialized bool
	strategy    strategy.Strategy
	log         *logger.Logger
	datasource  datasource.DataSource
}

func NewBacktestEngineV1() engine.Engine {
	return NewBacktestEngineV1WithLogger(nil)
}

// NewBacktestEngineV1WithLogger creates an engine logging to log. A nil logger
// is replaced by a production logger on Initialize.
func NewBacktestEngineV1WithLogger(log *logger.Logger) engine.Engine {
	return &BacktestEngineV1{
		config:      EmptyConfig(),
		initialized: false,
		strategy:    nil,
		log:         log,
		datasource:  nil,
	}
}

// Initialize implements engine.Engine.
func (b *BacktestEngineV1) Initialize(config string) error {
	if b.log == nil {
		var loggerError error

		b.log, loggerError = logger.NewLogger()
		if loggerError != nil {
			return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to create logger", loggerError)
		}
	}

	parsed, err := ParseConfig(config)
	if err != nil {
		b.log.Error("Failed to parse backtest config", zap.Error(err))

		return err
	}

	b.config = parsed
	b.initialized = true

	b.log.Debug("Backtest engine initialized",
		zap.String("start", b.config.StartDate.String()),
		zap.String("end", b.config.EndDate.String()),
		zap.Int("symbols", len(b.config.Symbols)),
		zap.String("broker", string(b.config.Broker)),
	)

	return nil
}

// SetDataSource implements engine.Engine. The data source is wrapped in a
// cache so repeated exchange rate and strategy lookups hit it once.
func (b *BacktestEngineV1) SetDataSource(ds datasource.DataSource) error {
	if ds == nil {
		return errors.New(errors.ErrCodeBacktestNoDatasource, "data source cannot be nil")
	}

	if _, ok := ds.(*datasource.CachedDataSource); !ok {
		ds = datasource.NewCachedDataSource(ds)
	}

	b.datasource = ds

	return nil
}

// LoadStrategy implements engine.Engine.
func (b *BacktestEngineV1) LoadStrategy(strat strategy.Strategy) error {
	if strat == nil {
		return errors.New(errors.ErrCodeBacktestNoStrategy, "strategy cannot be nil")
	}

	b.strategy = strat

	if b.log != nil {
		b.log.Debug("Strategy loaded", zap.String("strategy", strat.Name()))
	}

	return nil
}

// Run implements engine.Engine.
func (b *BacktestEngineV1) Run(ctx context.Context, callbacks engine.LifecycleCallbacks) (results []types.BacktestResult, err error) {
	if err := b.preRunCheck(); err != nil {
		return nil, err
	}

	location, err := b.config.Location()
	if err != nil {
		return nil, err
	}

	strat := b.strategy
	if strat == nil {
		strat, err = strategy.NewStrategy(b.config.Strategy, b.datasource, location)
		if err != nil {
			b.log.Error("Failed to build strategy",
				zap.String("strategy", b.config.Strategy.Name),
				zap.Error(err),
			)

			return nil, err
		}
	}

	account, err := types.NewBacktestAccount(b.config.InitialBalance, b.config.Currency)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	totalDays := len(calendar.Dates(b.config.StartDate, b.config.EndDate))

	b.log.Info("Backtest started",
		zap.String("run_id", runID),
		zap.String("strategy", strat.Name()),
		zap.Int("days", totalDays),
		zap.Int("symbols", len(b.config.Symbols)),
	)

	if callbacks.OnBacktestEnd != nil {
		defer func() {
			(*callbacks.OnBacktestEnd)(err)
		}()
	}

	if callbacks.OnBacktestStart != nil {
		if err := (*callbacks.OnBacktestStart)(runID, totalDays, len(b.config.Symbols)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCallbackFailed, "OnBacktestStart callback failed", err)
		}
	}

	rates := exchange.NewRateResolver(b.datasource, location, b.config.FxTickerSuffix)
	fee := commission_fee.GetCommissionFeeHandler(b.config.Broker, b.config.FeePerLot)

	backtester := NewBacktester(b.datasource, rates, fee, b.log, BacktesterOptions{
		Location:  location,
		Parallel:  b.config.Parallel,
		Callbacks: callbacks,
	})

	results, err = backtester.Run(ctx, strat, b.config.Symbols, b.config.StartDate, b.config.EndDate, account)
	if err != nil {
		b.log.Error("Backtest aborted",
			zap.String("run_id", runID),
			zap.Int("rows", len(results)),
			zap.Error(err),
		)

		return results, err
	}

	b.log.Info("Backtest finished",
		zap.String("run_id", runID),
		zap.Float64("balance", account.Balance()),
	)

	return results, nil
}

func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	config := b.config

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to generate schema", err)
	}

	return schema, nil
}

func (b *BacktestEngineV1) preRunCheck() error {
	if !b.initialized {
		return errors.New(errors.ErrCodeBacktestInitFailed, "engine is not initialized")
	}

	if b.datasource == nil {
		b.log.Error("No datasource set")

		return errors.New(errors.ErrCodeBacktestNoDatasource, "no datasource set")
	}

	if len(b.config.Symbols) == 0 {
		b.log.Error("No symbols configured")

		return errors.New(errors.ErrCodeBacktestNoSymbols, "no symbols configured")
	}

	return nil
}
