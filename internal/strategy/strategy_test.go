package strategy_test

import (
	"testing"
	"time"

	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/art-trader/internal/calendar"
	"github.com/rxtech-lab/art-trader/internal/indicator"
	"github.com/rxtech-lab/art-trader/internal/strategy"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/mocks"
	"github.com/rxtech-lab/art-trader/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type StrategyTestSuite struct {
	suite.Suite
	dataSource *datasource.MemoryDataSource
	symbol     types.Symbol
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategyTestSuite))
}

// addDay stores two hourly bars for day so the daily aggregate opens at open and closes at close.
func (suite *StrategyTestSuite) addDay(day calendar.Date, loc *time.Location, open, close float64) {
	start := day.Time(loc)
	suite.dataSource.Add(
		types.MarketData{Symbol: "EURUSD", Time: start.Add(time.Hour), Open: open, High: max(open, close) + 0.01, Low: min(open, close) - 0.01, Close: open},
		types.MarketData{Symbol: "EURUSD", Time: start.Add(20 * time.Hour), Open: open, High: max(open, close) + 0.01, Low: min(open, close) - 0.01, Close: close},
	)
}

func (suite *StrategyTestSuite) SetupTest() {
	suite.dataSource = datasource.NewMemoryDataSource()
	suite.symbol = types.Symbol{Ticker: "EURUSD", CurrencyProfit: "USD", ContractSize: 100000}
}

func (suite *StrategyTestSuite) TestLongAfterUpDay() {
	// Friday 2022-12-16 closed up, so Monday 2022-12-19 goes long
	suite.addDay(calendar.NewDate(2022, 12, 16), time.UTC, 1.00, 1.10)

	s, err := strategy.NewStrategy(strategy.DefaultStrategyConfig(), suite.dataSource, time.UTC)
	suite.Require().NoError(err)
	suite.Equal("previous_day_trend", s.Name())

	trade, err := s.Strat(suite.symbol, calendar.NewDate(2022, 12, 19))
	suite.Require().NoError(err)

	suite.Equal("EURUSD", trade.Ticker)
	suite.Equal(types.DirectionLong, trade.Direction)
	suite.Equal(1.10, trade.EntryPrice)
	suite.InDelta(1.10*1.02, trade.TakeProfit, 1e-12)
	suite.InDelta(1.10*0.98, trade.StopLoss, 1e-12)
	suite.Equal(1.0, trade.Volume)
	suite.NoError(trade.Validate())
}

func (suite *StrategyTestSuite) TestShortAfterDownOrFlatDay() {
	suite.addDay(calendar.NewDate(2022, 12, 14), time.UTC, 1.10, 1.00)
	suite.addDay(calendar.NewDate(2022, 12, 15), time.UTC, 1.05, 1.05)

	config := strategy.DefaultStrategyConfig()
	config.TakeProfitPercent = 1
	config.StopLossPercent = 3
	config.Volume = 0.5

	s, err := strategy.NewStrategy(config, suite.dataSource, time.UTC)
	suite.Require().NoError(err)

	for _, day := range []calendar.Date{calendar.NewDate(2022, 12, 15), calendar.NewDate(2022, 12, 16)} {
		trade, err := s.Strat(suite.symbol, day)
		suite.Require().NoError(err)

		suite.Equal(types.DirectionShort, trade.Direction)
		suite.InDelta(trade.EntryPrice*0.99, trade.TakeProfit, 1e-12)
		suite.InDelta(trade.EntryPrice*1.03, trade.StopLoss, 1e-12)
		suite.Equal(0.5, trade.Volume)
		suite.NoError(trade.Validate())
	}
}

func (suite *StrategyTestSuite) TestUsesLocationDayBoundaries() {
	loc := time.FixedZone("EET", 2*60*60)
	suite.addDay(calendar.NewDate(2022, 12, 16), loc, 1.00, 1.10)

	s, err := strategy.NewStrategy(strategy.DefaultStrategyConfig(), suite.dataSource, loc)
	suite.Require().NoError(err)

	trade, err := s.Strat(suite.symbol, calendar.NewDate(2022, 12, 19))
	suite.Require().NoError(err)
	suite.Equal(1.10, trade.EntryPrice)
}

func (suite *StrategyTestSuite) TestNoPreviousDayData() {
	s, err := strategy.NewStrategy(strategy.DefaultStrategyConfig(), suite.dataSource, time.UTC)
	suite.Require().NoError(err)

	_, err = s.Strat(suite.symbol, calendar.NewDate(2022, 12, 19))
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
}

func (suite *StrategyTestSuite) TestDataSourceFailure() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()

	ds := mocks.NewMockDataSource(ctrl)
	prev := calendar.NewDate(2022, 12, 16).Time(time.UTC)
	ds.EXPECT().GetBars("EURUSD", datasource.Interval1d, prev, prev.Add(24*time.Hour)).
		Return(nil, errors.New(errors.ErrCodeQueryFailed, "boom"))

	s, err := strategy.NewStrategy(strategy.DefaultStrategyConfig(), ds, time.UTC)
	suite.Require().NoError(err)

	_, err = s.Strat(suite.symbol, calendar.NewDate(2022, 12, 19))
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyRuntimeError))
	suite.True(errors.ChainHasCode(err, errors.ErrCodeQueryFailed))
}

func (suite *StrategyTestSuite) TestNewStrategyErrors() {
	_, err := strategy.NewStrategy(strategy.StrategyConfig{Name: "moon_phase", TakeProfitPercent: 1, StopLossPercent: 1, Volume: 1}, suite.dataSource, time.UTC)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedStrategy))

	_, err = strategy.NewStrategy(strategy.StrategyConfig{Name: "previous_day_trend"}, suite.dataSource, time.UTC)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))

	_, err = strategy.NewStrategy(strategy.DefaultStrategyConfig(), nil, time.UTC)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
}

func (suite *StrategyTestSuite) movingAverageStrategy(kind indicator.MovingAverageType) strategy.Strategy {
	config := strategy.DefaultStrategyConfig()
	config.Name = strategy.MovingAverageTrendName
	config.Period = 3
	config.MovingAverage = kind

	s, err := strategy.NewStrategy(config, suite.dataSource, time.UTC)
	suite.Require().NoError(err)
	suite.Equal("moving_average_trend", s.Name())

	return s
}

func (suite *StrategyTestSuite) TestMovingAverageTrendLongAboveAverage() {
	suite.addDay(calendar.NewDate(2022, 12, 14), time.UTC, 1.00, 1.00)
	suite.addDay(calendar.NewDate(2022, 12, 15), time.UTC, 1.00, 1.02)
	// a down day still goes long while the close is above the average
	suite.addDay(calendar.NewDate(2022, 12, 16), time.UTC, 1.08, 1.06)

	for _, kind := range []indicator.MovingAverageType{indicator.SMA, indicator.EMA} {
		trade, err := suite.movingAverageStrategy(kind).Strat(suite.symbol, calendar.NewDate(2022, 12, 19))
		suite.Require().NoError(err)
		suite.Equal(types.DirectionLong, trade.Direction)
		suite.Equal(1.06, trade.EntryPrice)
		suite.InDelta(1.06*1.02, trade.TakeProfit, 1e-12)
		suite.NoError(trade.Validate())
	}
}

func (suite *StrategyTestSuite) TestMovingAverageTrendShortBelowAverage() {
	suite.addDay(calendar.NewDate(2022, 12, 15), time.UTC, 1.10, 1.10)
	suite.addDay(calendar.NewDate(2022, 12, 16), time.UTC, 1.10, 1.08)
	// Monday 2022-12-19 closed up but below the average of the last three days
	suite.addDay(calendar.NewDate(2022, 12, 19), time.UTC, 1.00, 1.05)

	trade, err := suite.movingAverageStrategy(indicator.SMA).Strat(suite.symbol, calendar.NewDate(2022, 12, 20))
	suite.Require().NoError(err)
	suite.Equal(types.DirectionShort, trade.Direction)
	suite.Equal(1.05, trade.EntryPrice)
	suite.NoError(trade.Validate())
}

func (suite *StrategyTestSuite) TestMovingAverageTrendNeedsFullPeriod() {
	suite.addDay(calendar.NewDate(2022, 12, 16), time.UTC, 1.00, 1.10)

	_, err := suite.movingAverageStrategy(indicator.SMA).Strat(suite.symbol, calendar.NewDate(2022, 12, 19))
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
}

func (suite *StrategyTestSuite) TestMovingAverageTrendMissingPreviousDay() {
	// weekend bars fill the window but Monday itself is missing
	suite.addDay(calendar.NewDate(2022, 12, 16), time.UTC, 1.00, 1.00)
	suite.addDay(calendar.NewDate(2022, 12, 17), time.UTC, 1.00, 1.00)
	suite.addDay(calendar.NewDate(2022, 12, 18), time.UTC, 1.00, 1.00)

	config := strategy.DefaultStrategyConfig()
	config.Name = strategy.MovingAverageTrendName
	config.Period = 2
	s, err := strategy.NewStrategy(config, suite.dataSource, time.UTC)
	suite.Require().NoError(err)

	_, err = s.Strat(suite.symbol, calendar.NewDate(2022, 12, 20))
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
	suite.Contains(err.Error(), "2022-12-19")
}

func (suite *StrategyTestSuite) TestMovingAverageTrendConfigValidation() {
	config := strategy.DefaultStrategyConfig()
	config.Name = strategy.MovingAverageTrendName
	config.MovingAverage = "wma"

	_, err := strategy.NewStrategy(config, suite.dataSource, time.UTC)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))

	config.MovingAverage = indicator.EMA
	config.Period = 1

	_, err = strategy.NewStrategy(config, suite.dataSource, time.UTC)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
}
