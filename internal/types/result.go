package types

import "github.com/rxtech-lab/art-trader/internal/calendar"

// BacktestResult is one row of a backtest: the date, the total profit across
// symbols for that date and the balance after applying it.
type BacktestResult struct {
	Date    calendar.Date `yaml:"date" json:"date"`
	Profit  float64       `yaml:"profit" json:"profit"`
	Balance float64       `yaml:"balance" json:"balance"`
}
