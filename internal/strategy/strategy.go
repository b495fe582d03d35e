// Package strategy holds the strategies a backtest can run and the registry
// building them from configuration.
package strategy

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/art-trader/internal/calendar"
	"github.com/rxtech-lab/art-trader/internal/indicator"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/pkg/errors"
)

// Strategy produces the candidate trade for a symbol on a market day.
type Strategy interface {
	Name() string
	// Strat returns the trade to attempt on day. Any error skips the symbol for that day.
	Strat(symbol types.Symbol, day calendar.Date) (types.Trade, error)
}

const (
	PreviousDayTrendName   = "previous_day_trend"
	MovingAverageTrendName = "moving_average_trend"

	defaultMovingAveragePeriod = 20
)

// Names lists the strategies NewStrategy can build.
var Names = []any{
	PreviousDayTrendName,
	MovingAverageTrendName,
}

// StrategyConfig selects and parameterises a strategy.
type StrategyConfig struct {
	// Name is the registered strategy name.
	Name string `yaml:"name" json:"name" jsonschema:"title=Strategy,description=Registered strategy name,enum=previous_day_trend,enum=moving_average_trend" validate:"required"`
	// TakeProfitPercent is the distance of the take profit from the entry price, in percent.
	TakeProfitPercent float64 `yaml:"take_profit_percent" json:"take_profit_percent" jsonschema:"title=Take Profit Percent,default=2" validate:"gt=0,lt=100"`
	// StopLossPercent is the distance of the stop loss from the entry price, in percent.
	StopLossPercent float64 `yaml:"stop_loss_percent" json:"stop_loss_percent" jsonschema:"title=Stop Loss Percent,default=2" validate:"gt=0,lt=100"`
	// Volume is the trade size in lots.
	Volume float64 `yaml:"volume" json:"volume" jsonschema:"title=Volume,default=1" validate:"gt=0"`
	// Period is the number of daily closes averaged by moving_average_trend. Zero means 20.
	Period int `yaml:"period,omitempty" json:"period,omitempty" jsonschema:"title=Period,default=20" validate:"omitempty,min=2"`
	// MovingAverage is sma or ema, used by moving_average_trend. Empty means sma.
	MovingAverage indicator.MovingAverageType `yaml:"moving_average,omitempty" json:"moving_average,omitempty" jsonschema:"title=Moving Average,enum=sma,enum=ema,default=sma" validate:"omitempty,oneof=sma ema"`
}

// DefaultStrategyConfig returns the parameters of the reference previous day trend strategy.
func DefaultStrategyConfig() StrategyConfig {
	return StrategyConfig{
		Name:              PreviousDayTrendName,
		TakeProfitPercent: 2,
		StopLossPercent:   2,
		Volume:            1,
	}
}

// NewStrategy builds the strategy named in config. ds is the price series the
// strategy reads, with day boundaries taken in location.
func NewStrategy(config StrategyConfig, ds datasource.DataSource, location *time.Location) (Strategy, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid strategy configuration", err)
	}

	if ds == nil {
		return nil, errors.New(errors.ErrCodeStrategyConfigError, "strategy requires a data source")
	}

	switch config.Name {
	case PreviousDayTrendName:
		return NewPreviousDayTrendStrategy(config, ds, location), nil
	case MovingAverageTrendName:
		return NewMovingAverageTrendStrategy(config, ds, location), nil
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy: %s", config.Name)
	}
}
