// Package exchange converts amounts between currencies using the hourly bars
// of currency pair tickers stored in a data source.
package exchange

import (
	"fmt"
	"time"

	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/art-trader/pkg/errors"
)

// RateResolver returns the multiplier converting one unit of currency from into currency to at a given instant.
type RateResolver interface {
	Rate(from string, to string, at time.Time) (float64, error)
}

// PairRateResolver reads rates from pair tickers such as EURUSD. A pair ticker
// is the two currency codes followed by an optional suffix used by the price
// feed, e.g. EURUSD-Z.
type PairRateResolver struct {
	dataSource   datasource.DataSource
	location     *time.Location
	tickerSuffix string
}

// NewRateResolver creates a resolver reading bars from ds. Timestamps are
// converted into location, the timezone the bars are stored in, before the
// hourly bar is looked up.
func NewRateResolver(ds datasource.DataSource, location *time.Location, tickerSuffix string) *PairRateResolver {
	if location == nil {
		location = time.UTC
	}

	return &PairRateResolver{
		dataSource:   ds,
		location:     location,
		tickerSuffix: tickerSuffix,
	}
}

// Rate implements RateResolver. The close of the hourly bar covering at is
// used. The inverse pair is only consulted when the from/to pair is absent
// from the data source; a present pair without a usable bar is an error.
func (r *PairRateResolver) Rate(from string, to string, at time.Time) (float64, error) {
	if from == to {
		return 1.0, nil
	}

	hour := r.hourOf(at)
	direct := from + to + r.tickerSuffix
	inverse := to + from + r.tickerSuffix

	exists, err := r.dataSource.Exists(direct)
	if err != nil {
		return 0, r.noRate(from, to, err)
	}

	if exists {
		price, err := r.closeAt(direct, hour)
		if err != nil {
			return 0, r.noRate(from, to, err)
		}

		return price, nil
	}

	exists, err = r.dataSource.Exists(inverse)
	if err != nil {
		return 0, r.noRate(from, to, err)
	}

	if !exists {
		return 0, r.noRate(from, to, errors.Newf(errors.ErrCodeDataNotFound, "neither %s nor %s has bars", direct, inverse))
	}

	price, err := r.closeAt(inverse, hour)
	if err != nil {
		return 0, r.noRate(from, to, err)
	}

	if price == 0 {
		return 0, errors.Newf(errors.ErrCodeNoExchangeRate, "%s has a zero price at %s", inverse, hour.Format(time.RFC3339))
	}

	return 1 / price, nil
}

func (r *PairRateResolver) noRate(from string, to string, cause error) error {
	return errors.Wrap(errors.ErrCodeNoExchangeRate, fmt.Sprintf("no exchange rate found for %s/%s", from, to), cause)
}

// hourOf truncates at to the start of its hour in the resolver location.
func (r *PairRateResolver) hourOf(at time.Time) time.Time {
	local := at.In(r.location)

	return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, r.location)
}

func (r *PairRateResolver) closeAt(ticker string, hour time.Time) (float64, error) {
	bars, err := r.dataSource.GetBars(ticker, datasource.Interval1h, hour, hour.Add(time.Hour))
	if err != nil {
		return 0, err
	}

	if len(bars) == 0 {
		return 0, errors.Newf(errors.ErrCodeDataNotFound, "no %s bar at %s", ticker, hour.Format(time.RFC3339))
	}

	if err := bars[0].Validate(); err != nil {
		return 0, err
	}

	return bars[0].Close, nil
}
