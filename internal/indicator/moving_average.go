// Package indicator computes technical indicators over price bars.
package indicator

import (
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/pkg/errors"
)

// MovingAverageType selects how closes are averaged.
type MovingAverageType string

const (
	SMA MovingAverageType = "sma"
	EMA MovingAverageType = "ema"
)

// MovingAverage returns the moving average of the closes of bars over period.
// bars must be ascending by time and hold at least period bars; for SMA only
// the last period bars are used.
func MovingAverage(kind MovingAverageType, bars []types.MarketData, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "period must be a positive integer, got %d", period)
	}

	if len(bars) < period {
		return 0, errors.Newf(errors.ErrCodeDataNotFound, "moving average over %d bars needs at least %d bars, got %d", period, period, len(bars))
	}

	switch kind {
	case SMA:
		return simpleMovingAverage(bars[len(bars)-period:]), nil
	case EMA:
		return exponentialMovingAverage(bars, period), nil
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported moving average type: %s", kind)
	}
}

func simpleMovingAverage(bars []types.MarketData) float64 {
	sum := 0.0
	for _, bar := range bars {
		sum += bar.Close
	}

	return sum / float64(len(bars))
}

// exponentialMovingAverage is seeded with the SMA of the first period closes
// and then applies alpha = 2/(period+1) to every later close.
func exponentialMovingAverage(bars []types.MarketData, period int) float64 {
	alpha := 2.0 / float64(period+1)
	ema := simpleMovingAverage(bars[:period])

	for _, bar := range bars[period:] {
		ema = bar.Close*alpha + ema*(1-alpha)
	}

	return ema
}
