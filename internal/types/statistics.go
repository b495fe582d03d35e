package types

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/rxtech-lab/art-trader/internal/calendar"
	"github.com/shopspring/decimal"
)

// TradingDaysPerYear annualises the daily Sharpe ratio.
const TradingDaysPerYear = 252

type DayCounts struct {
	// Number of days with a positive total profit.
	Profitable int `yaml:"profitable" json:"profitable"`
	// Number of days with a negative total profit.
	Losing int `yaml:"losing" json:"losing"`
	// Number of days without any profit, e.g. no trade was filled.
	Flat int `yaml:"flat" json:"flat"`
}

type Drawdown struct {
	// Largest peak-to-trough balance decline.
	Absolute float64 `yaml:"absolute" json:"absolute"`
	// Absolute drawdown as a percent of the peak it was measured from.
	Percent decimal.Decimal `yaml:"percent" json:"percent"`
}

// BacktestSummary aggregates the result rows of one backtest run.
type BacktestSummary struct {
	StartDate      calendar.Date `yaml:"start_date" json:"start_date"`
	EndDate        calendar.Date `yaml:"end_date" json:"end_date"`
	InitialBalance float64       `yaml:"initial_balance" json:"initial_balance"`
	FinalBalance   float64       `yaml:"final_balance" json:"final_balance"`
	TotalProfit    float64       `yaml:"total_profit" json:"total_profit"`
	// Total profit over the initial balance in percent, rounded to 4 places.
	ReturnPercent decimal.Decimal `yaml:"return_percent" json:"return_percent"`
	TradingDays   int             `yaml:"trading_days" json:"trading_days"`
	Days          DayCounts       `yaml:"days" json:"days"`
	MaxDrawdown   Drawdown        `yaml:"max_drawdown" json:"max_drawdown"`
	MeanProfit    float64         `yaml:"mean_profit" json:"mean_profit"`
	StdDevProfit  float64         `yaml:"std_dev_profit" json:"std_dev_profit"`
	SharpeRatio   float64         `yaml:"sharpe_ratio" json:"sharpe_ratio"`
}

// NewBacktestSummary summarises rows as returned by a backtest run: the first row
// is the synthetic initial row carrying the starting balance.
func NewBacktestSummary(rows []BacktestResult) BacktestSummary {
	if len(rows) == 0 {
		return BacktestSummary{}
	}

	initial := rows[0]
	last := rows[len(rows)-1]
	days := rows[1:]

	summary := BacktestSummary{
		StartDate:      initial.Date,
		EndDate:        last.Date,
		InitialBalance: initial.Balance,
		FinalBalance:   last.Balance,
		TotalProfit:    last.Balance - initial.Balance,
		TradingDays:    len(days),
		ReturnPercent:  decimal.Zero,
		MaxDrawdown:    Drawdown{Absolute: 0, Percent: decimal.Zero},
	}

	if initial.Balance != 0 {
		summary.ReturnPercent = decimal.NewFromFloat(summary.TotalProfit).
			Div(decimal.NewFromFloat(initial.Balance)).
			Mul(decimal.NewFromInt(100)).
			Round(4)
	}

	profits := make([]float64, 0, len(days))
	peak := initial.Balance

	for _, row := range days {
		profits = append(profits, row.Profit)

		switch {
		case row.Profit > 0:
			summary.Days.Profitable++
		case row.Profit < 0:
			summary.Days.Losing++
		default:
			summary.Days.Flat++
		}

		if row.Balance > peak {
			peak = row.Balance
		}

		if drawdown := peak - row.Balance; drawdown > summary.MaxDrawdown.Absolute {
			summary.MaxDrawdown.Absolute = drawdown
			if peak != 0 {
				summary.MaxDrawdown.Percent = decimal.NewFromFloat(drawdown).
					Div(decimal.NewFromFloat(peak)).
					Mul(decimal.NewFromInt(100)).
					Round(4)
			}
		}
	}

	if len(profits) == 0 {
		return summary
	}

	// stats only fails on empty input, which is excluded above
	summary.MeanProfit, _ = stats.Mean(profits)
	summary.StdDevProfit, _ = stats.StandardDeviation(profits)

	if summary.StdDevProfit != 0 {
		summary.SharpeRatio = summary.MeanProfit / summary.StdDevProfit * math.Sqrt(TradingDaysPerYear)
	}

	return summary
}
