package marketdata

import (
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/art-trader/pkg/errors"
)

// Timespan is a bar size such as "15m" or "1d".
type Timespan string

const (
	TimespanOneMinute      Timespan = "1m"
	TimespanFiveMinutes    Timespan = "5m"
	TimespanFifteenMinutes Timespan = "15m"
	TimespanThirtyMinutes  Timespan = "30m"
	TimespanOneHour        Timespan = "1h"
	TimespanFourHours      Timespan = "4h"
	TimespanOneDay         Timespan = "1d"
	TimespanOneWeek        Timespan = "1w"
)

type timespanUnit struct {
	multiplier int
	unit       models.Timespan
}

var timespanUnits = map[Timespan]timespanUnit{
	TimespanOneMinute:      {1, models.Minute},
	TimespanFiveMinutes:    {5, models.Minute},
	TimespanFifteenMinutes: {15, models.Minute},
	TimespanThirtyMinutes:  {30, models.Minute},
	TimespanOneHour:        {1, models.Hour},
	TimespanFourHours:      {4, models.Hour},
	TimespanOneDay:         {1, models.Day},
	TimespanOneWeek:        {1, models.Week},
}

// ParseTimespan validates s as one of the supported bar sizes.
func ParseTimespan(s string) (Timespan, error) {
	t := Timespan(s)
	if _, ok := timespanUnits[t]; !ok {
		return "", errors.Newf(errors.ErrCodeInvalidTimespan, "unsupported timespan: %q", s)
	}

	return t, nil
}

// Multiplier returns how many units of Timespan() one bar spans.
func (t Timespan) Multiplier() int {
	if u, ok := timespanUnits[t]; ok {
		return u.multiplier
	}

	return 1
}

// Timespan returns the provider unit of the bar size. Unknown values map to a day.
func (t Timespan) Timespan() models.Timespan {
	if u, ok := timespanUnits[t]; ok {
		return u.unit
	}

	return models.Day
}
