package engine

import (
	"time"

	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/art-trader/internal/calendar"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/pkg/errors"
)

const maxBarsPerDay = 24

// fetchDayPriceAction returns the hourly bars of ticker covering day in loc.
// A day must hold between one and 24 bars.
func fetchDayPriceAction(ds datasource.DataSource, ticker string, day calendar.Date, loc *time.Location) ([]types.MarketData, error) {
	start := day.Time(loc)
	end := start.Add(24 * time.Hour)

	bars, err := ds.GetBars(ticker, datasource.Interval1h, start, end)
	if err != nil {
		return nil, err
	}

	if len(bars) > maxBarsPerDay {
		return nil, errors.Newf(errors.ErrCodeTooManyBars, "%s has %d hourly bars on %s, expected at most %d", ticker, len(bars), day, maxBarsPerDay)
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoPriceAction, "%s has no price action on %s", ticker, day)
	}

	return bars, nil
}
