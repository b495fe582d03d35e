package engine

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/exchange"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/pkg/errors"
)

// TradeSimulator decides how a candidate trade plays out over a day of bars
// and what it earns in the settlement currency.
type TradeSimulator struct {
	rates    exchange.RateResolver
	fee      commission_fee.CommissionFee
	currency string
}

// NewTradeSimulator creates a simulator settling profit into currency.
// A nil fee model charges nothing.
func NewTradeSimulator(rates exchange.RateResolver, fee commission_fee.CommissionFee, currency string) *TradeSimulator {
	if fee == nil {
		fee = commission_fee.NewZeroCommissionFee()
	}

	return &TradeSimulator{
		rates:    rates,
		fee:      fee,
		currency: currency,
	}
}

// Simulate walks bars in order. The trade fills on the first bar whose range
// strictly contains the entry price and exits on the first bar (the fill bar
// included) whose range contains the take profit or the stop loss. When both
// are inside the same bar the take profit wins. A filled trade that never
// exits is closed at the last bar's close.
func (s *TradeSimulator) Simulate(trade types.Trade, symbol types.Symbol, bars []types.MarketData) (types.SimulationResult, error) {
	result := types.SimulationResult{
		Trade:     trade,
		Outcome:   types.OutcomeNeverFilled,
		EntryTime: optional.None[time.Time](),
		ExitTime:  optional.None[time.Time](),
	}

	for _, bar := range bars {
		if err := bar.Validate(); err != nil {
			return result, err
		}
	}

	filled := false

	for _, bar := range bars {
		if !filled {
			if !bar.Brackets(trade.EntryPrice) {
				continue
			}

			rate, err := s.rates.Rate(symbol.CurrencyProfit, s.currency, bar.Time)
			if err != nil {
				return result, errors.Wrapf(errors.ErrCodeNoExchangeRate, err, "failed to resolve entry rate for %s", trade.Ticker)
			}

			filled = true
			result.EntryRate = rate
			result.EntryTime = optional.Some(bar.Time)
		}

		var exitPrice float64

		switch {
		case bar.Brackets(trade.TakeProfit):
			result.Outcome = types.OutcomeTakeProfit
			exitPrice = trade.TakeProfit
		case bar.Brackets(trade.StopLoss):
			result.Outcome = types.OutcomeStopLoss
			exitPrice = trade.StopLoss
		default:
			continue
		}

		return s.close(result, symbol, exitPrice, bar.Time)
	}

	if !filled {
		return result, nil
	}

	last := bars[len(bars)-1]
	result.Outcome = types.OutcomeOpenAtEnd

	return s.close(result, symbol, last.Close, last.Time)
}

func (s *TradeSimulator) close(result types.SimulationResult, symbol types.Symbol, exitPrice float64, at time.Time) (types.SimulationResult, error) {
	rate, err := s.rates.Rate(symbol.CurrencyProfit, s.currency, at)
	if err != nil {
		return result, errors.Wrapf(errors.ErrCodeNoExchangeRate, err, "failed to resolve exit rate for %s", result.Trade.Ticker)
	}

	trade := result.Trade
	result.ExitPrice = exitPrice
	result.ExitRate = rate
	result.ExitTime = optional.Some(at)
	result.GrossProfit = calculateProfit(trade, symbol, exitPrice, result.EntryRate, rate)
	result.Fee = s.fee.Calculate(trade.Volume)
	result.Profit = result.GrossProfit - result.Fee

	return result, nil
}

// calculateProfit converts the price move of trade into the settlement currency
// using the mean of the entry and exit rates.
func calculateProfit(trade types.Trade, symbol types.Symbol, exitPrice float64, entryRate float64, exitRate float64) float64 {
	avgRate := (entryRate + exitRate) / 2

	return (exitPrice - trade.EntryPrice) * trade.Volume * trade.Direction.Multiplier() * symbol.ContractSize * avgRate
}
