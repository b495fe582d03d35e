package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/art-trader/pkg/errors"
)

type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// Multiplier is +1 for long positions and -1 for short ones.
func (d Direction) Multiplier() float64 {
	if d == DirectionShort {
		return -1
	}

	return 1
}

// Trade is a candidate position produced by a strategy before its execution is known.
type Trade struct {
	Ticker     string    `yaml:"ticker" json:"ticker" validate:"required"`
	Direction  Direction `yaml:"direction" json:"direction" validate:"required,oneof=LONG SHORT"`
	EntryPrice float64   `yaml:"entry_price" json:"entry_price" validate:"gt=0"`
	TakeProfit float64   `yaml:"take_profit" json:"take_profit" validate:"gt=0"`
	StopLoss   float64   `yaml:"stop_loss" json:"stop_loss" validate:"gt=0"`
	Volume     float64   `yaml:"volume" json:"volume" validate:"gt=0"`
}

// Validate checks the fields and the placement of take profit and stop loss:
// TP > entry > SL for a long trade, TP < entry < SL for a short one.
func (t Trade) Validate() error {
	if err := validator.New().Struct(t); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidTrade, err, "invalid trade for %q", t.Ticker)
	}

	switch t.Direction {
	case DirectionLong:
		if t.TakeProfit <= t.EntryPrice {
			return errors.Newf(errors.ErrCodeInvalidTakeProfit,
				"take profit %v must be above entry %v for a long trade", t.TakeProfit, t.EntryPrice)
		}

		if t.StopLoss >= t.EntryPrice {
			return errors.Newf(errors.ErrCodeInvalidStopLoss,
				"stop loss %v must be below entry %v for a long trade", t.StopLoss, t.EntryPrice)
		}
	case DirectionShort:
		if t.TakeProfit >= t.EntryPrice {
			return errors.Newf(errors.ErrCodeInvalidTakeProfit,
				"take profit %v must be below entry %v for a short trade", t.TakeProfit, t.EntryPrice)
		}

		if t.StopLoss <= t.EntryPrice {
			return errors.Newf(errors.ErrCodeInvalidStopLoss,
				"stop loss %v must be above entry %v for a short trade", t.StopLoss, t.EntryPrice)
		}
	}

	return nil
}
