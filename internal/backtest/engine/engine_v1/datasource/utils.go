package datasource

import (
	"time"

	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/pkg/errors"
)

func getIntervalMinutes(interval Interval) (int, error) {
	var intervalMinutes int

	switch interval {
	case Interval1m:
		intervalMinutes = 1
	case Interval5m:
		intervalMinutes = 5
	case Interval15m:
		intervalMinutes = 15
	case Interval30m:
		intervalMinutes = 30
	case Interval1h:
		intervalMinutes = 60
	case Interval4h:
		intervalMinutes = 240
	case Interval6h:
		intervalMinutes = 360
	case Interval8h:
		intervalMinutes = 480
	case Interval12h:
		intervalMinutes = 720
	case Interval1d:
		intervalMinutes = 1440
	case Interval1w:
		intervalMinutes = 10080
	default:
		return 0, errors.Newf(errors.ErrCodeUnsupportedInterval, "unsupported interval: %s", interval)
	}

	return intervalMinutes, nil
}

// Duration returns the length of one bar of the interval.
func (i Interval) Duration() (time.Duration, error) {
	minutes, err := getIntervalMinutes(i)
	if err != nil {
		return 0, err
	}

	return time.Duration(minutes) * time.Minute, nil
}

// aggregate groups ascending bars into buckets of width d aligned on origin.
// Open is the first open, close the last close, high and low the extremes and
// volume the sum of each bucket.
func aggregate(bars []types.MarketData, origin time.Time, d time.Duration) []types.MarketData {
	var out []types.MarketData

	for _, bar := range bars {
		bucket := origin.Add(bar.Time.Sub(origin) / d * d)

		if n := len(out); n > 0 && out[n-1].Time.Equal(bucket) {
			last := &out[n-1]
			last.High = max(last.High, bar.High)
			last.Low = min(last.Low, bar.Low)
			last.Close = bar.Close
			last.Volume += bar.Volume

			continue
		}

		bar.Time = bucket
		out = append(out, bar)
	}

	return out
}
