package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// Outcome is the terminal state a simulated trade ends in.
type Outcome string

const (
	// OutcomeNeverFilled means no bar bracketed the entry price. Profit is zero.
	OutcomeNeverFilled Outcome = "NEVER_FILLED"
	// OutcomeTakeProfit means the position was closed at the take profit price.
	OutcomeTakeProfit Outcome = "TAKE_PROFIT"
	// OutcomeStopLoss means the position was closed at the stop loss price.
	OutcomeStopLoss Outcome = "STOP_LOSS"
	// OutcomeOpenAtEnd means the position was force-closed at the last bar's close.
	OutcomeOpenAtEnd Outcome = "OPEN_AT_END"
)

// SimulationResult describes how a candidate trade played out over a day of bars.
type SimulationResult struct {
	Trade   Trade   `yaml:"trade" json:"trade"`
	Outcome Outcome `yaml:"outcome" json:"outcome"`
	// EntryTime is the time of the bar the trade was filled on. None if never filled.
	EntryTime optional.Option[time.Time] `yaml:"entry_time" json:"entry_time"`
	// ExitTime is the time of the bar the trade was closed on. None if never filled.
	ExitTime  optional.Option[time.Time] `yaml:"exit_time" json:"exit_time"`
	ExitPrice float64                    `yaml:"exit_price" json:"exit_price"`
	// EntryRate and ExitRate convert the profit currency into the settlement currency.
	EntryRate float64 `yaml:"entry_rate" json:"entry_rate"`
	ExitRate  float64 `yaml:"exit_rate" json:"exit_rate"`
	// GrossProfit is the profit in settlement currency before fees.
	GrossProfit float64 `yaml:"gross_profit" json:"gross_profit"`
	Fee         float64 `yaml:"fee" json:"fee"`
	// Profit is GrossProfit minus Fee.
	Profit float64 `yaml:"profit" json:"profit"`
}

// Filled reports whether the trade entered a position.
func (r SimulationResult) Filled() bool {
	return r.Outcome != OutcomeNeverFilled
}
