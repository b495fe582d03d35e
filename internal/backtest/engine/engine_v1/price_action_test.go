package engine

import (
	"testing"
	"time"

	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/art-trader/internal/calendar"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/mocks"
	"github.com/rxtech-lab/art-trader/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PriceActionTestSuite struct {
	suite.Suite
}

func TestPriceActionSuite(t *testing.T) {
	suite.Run(t, new(PriceActionTestSuite))
}

func (suite *PriceActionTestSuite) TestFetchesOneDayInLocation() {
	loc := time.FixedZone("EET", 2*60*60)
	day := calendar.NewDate(2023, 1, 3)

	ds := datasource.NewMemoryDataSource()
	ds.Add(mocks.FlatBars("EURUSD", day.AddDays(-1), loc, 1.05)...)
	ds.Add(mocks.FlatBars("EURUSD", day, loc, 1.06)...)
	ds.Add(mocks.FlatBars("EURUSD", day.AddDays(1), loc, 1.07)...)

	bars, err := fetchDayPriceAction(ds, "EURUSD", day, loc)
	suite.NoError(err)
	suite.Len(bars, 24)
	suite.True(bars[0].Time.Equal(day.Time(loc)))

	for _, bar := range bars {
		suite.Equal(1.06, bar.Close)
	}
}

func (suite *PriceActionTestSuite) TestNoPriceAction() {
	ds := datasource.NewMemoryDataSource()

	_, err := fetchDayPriceAction(ds, "EURUSD", calendar.NewDate(2023, 1, 3), time.UTC)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoPriceAction))
}

func (suite *PriceActionTestSuite) TestTooManyBars() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()

	day := calendar.NewDate(2023, 1, 3)
	bars := append(mocks.FlatBars("EURUSD", day, time.UTC, 1), mocks.FlatBars("EURUSD", day.AddDays(1), time.UTC, 1)...)

	ds := mocks.NewMockDataSource(ctrl)
	ds.EXPECT().
		GetBars("EURUSD", datasource.Interval1h, day.Time(time.UTC), day.Time(time.UTC).Add(24*time.Hour)).
		Return(bars, nil)

	_, err := fetchDayPriceAction(ds, "EURUSD", day, time.UTC)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeTooManyBars))
}

func (suite *PriceActionTestSuite) TestDataSourceError() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()

	ds := mocks.NewMockDataSource(ctrl)
	ds.EXPECT().GetBars(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]types.MarketData(nil), errors.New(errors.ErrCodeQueryFailed, "query failed"))

	_, err := fetchDayPriceAction(ds, "EURUSD", calendar.NewDate(2023, 1, 3), time.UTC)
	suite.True(errors.HasCode(err, errors.ErrCodeQueryFailed))
}
